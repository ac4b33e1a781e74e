package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sort"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"coinwatch/internal/domain"
)

// ErrNotEnoughData is returned when no asset in the window has the two or
// more samples a line needs.
var ErrNotEnoughData = errors.New("charts: not enough samples to draw")

const (
	defaultWidth  = 1200
	defaultHeight = 600
	panelHeight   = 320
)

type Renderer struct {
	Width  int
	Height int
}

// Trends draws one price line per asset over the window.
func (r *Renderer) Trends(w io.Writer, history map[domain.Asset][]domain.Sample, hours int) error {
	series := make([]chart.Series, 0, len(history))
	for _, asset := range sortedAssets(history) {
		samples := history[asset]
		if len(samples) < 2 {
			continue
		}
		xs, ys := seriesValues(samples, func(s domain.Sample) float64 { return s.PriceUSD })
		series = append(series, chart.TimeSeries{
			Name:    title(asset),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Cryptocurrency Prices - Last %d Hours", hours),
		Width:  r.width(),
		Height: r.height(),
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat(timeFormat(hours)),
		},
		YAxis:  chart.YAxis{Name: "Price (USD)"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Comparison draws each asset's price rebased to 100 at its first sample in
// the window, so differently priced assets share one scale.
func (r *Renderer) Comparison(w io.Writer, history map[domain.Asset][]domain.Sample, hours int) error {
	series := make([]chart.Series, 0, len(history))
	for _, asset := range sortedAssets(history) {
		samples := history[asset]
		if len(samples) < 2 || samples[0].PriceUSD == 0 {
			continue
		}
		base := samples[0].PriceUSD
		xs, ys := seriesValues(samples, func(s domain.Sample) float64 {
			return s.PriceUSD / base * 100
		})
		series = append(series, chart.TimeSeries{
			Name:    title(asset),
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeWidth: 2},
		})
	}
	if len(series) == 0 {
		return ErrNotEnoughData
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Normalized Price Comparison - Last %d Hours (Starting at 100)", hours),
		Width:  r.width(),
		Height: r.height(),
		XAxis: chart.XAxis{
			Name:           "Time",
			ValueFormatter: chart.TimeValueFormatterWithFormat(timeFormat(hours)),
		},
		YAxis:  chart.YAxis{Name: "Normalized Price"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}

// Metrics draws a single asset's price, market cap and volume as three
// stacked panels in one image.
func (r *Renderer) Metrics(w io.Writer, asset domain.Asset, samples []domain.Sample, hours int) error {
	if len(samples) < 2 {
		return ErrNotEnoughData
	}

	panels := []struct {
		title string
		pick  func(domain.Sample) float64
		color drawing.Color
	}{
		{fmt.Sprintf("%s Price (USD)", title(asset)), func(s domain.Sample) float64 { return s.PriceUSD }, chart.ColorBlue},
		{"Market Cap (USD)", func(s domain.Sample) float64 { return s.MarketCapUSD }, chart.ColorGreen},
		{"24h Volume (USD)", func(s domain.Sample) float64 { return s.VolumeUSD }, chart.ColorRed},
	}

	images := make([]image.Image, 0, len(panels))
	for _, p := range panels {
		img, err := r.panel(p.title, samples, p.pick, p.color, hours)
		if err != nil {
			return err
		}
		images = append(images, img)
	}
	return png.Encode(w, stack(images))
}

func (r *Renderer) panel(name string, samples []domain.Sample, pick func(domain.Sample) float64, strokeColor drawing.Color, hours int) (image.Image, error) {
	xs, ys := seriesValues(samples, pick)
	graph := chart.Chart{
		Title:  name,
		Width:  r.width(),
		Height: panelHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(timeFormat(hours)),
		},
		Series: []chart.Series{chart.TimeSeries{
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: strokeColor, StrokeWidth: 2},
		}},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func stack(imgs []image.Image) *image.RGBA {
	width, height := 0, 0
	for _, img := range imgs {
		b := img.Bounds()
		if b.Dx() > width {
			width = b.Dx()
		}
		height += b.Dy()
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
		y += b.Dy()
	}
	return out
}

func (r *Renderer) width() int {
	if r.Width > 0 {
		return r.Width
	}
	return defaultWidth
}

func (r *Renderer) height() int {
	if r.Height > 0 {
		return r.Height
	}
	return defaultHeight
}

func seriesValues(samples []domain.Sample, pick func(domain.Sample) float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(samples))
	ys := make([]float64, 0, len(samples))
	for _, s := range samples {
		xs = append(xs, s.CapturedAt)
		ys = append(ys, pick(s))
	}
	return xs, ys
}

func timeFormat(hours int) string {
	if hours > 0 && hours <= 24 {
		return "15:04"
	}
	return "01-02 15:04"
}

func title(a domain.Asset) string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedAssets(history map[domain.Asset][]domain.Sample) []domain.Asset {
	out := make([]domain.Asset, 0, len(history))
	for a := range history {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
