package console

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"coinwatch/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// Renderer writes human-readable tracker and query output.
type Renderer struct{ Out io.Writer }

func NewRenderer(out io.Writer) *Renderer { return &Renderer{Out: out} }

// Cycle prints the prices captured by one poll cycle.
func (r *Renderer) Cycle(samples map[domain.Asset]domain.Sample, at time.Time) {
	fmt.Fprintf(r.Out, "\nTime: %s\n", at.Format(timeLayout))
	for _, s := range sorted(samples) {
		fmt.Fprintf(r.Out, "\n%s:\n", title(s.Asset))
		fmt.Fprintf(r.Out, "Price: %s\n", money(s.PriceUSD))
		fmt.Fprintf(r.Out, "Market Cap: %s\n", money(s.MarketCapUSD))
		fmt.Fprintf(r.Out, "24h Volume: %s\n", money(s.VolumeUSD))
	}
}

// Latest prints the most recent stored sample per asset.
func (r *Renderer) Latest(latest map[domain.Asset]domain.Sample) {
	fmt.Fprintf(r.Out, "\nLatest stored data from database:\n")
	for _, s := range sorted(latest) {
		fmt.Fprintf(r.Out, "%s: %s at %s\n",
			title(s.Asset), money(s.PriceUSD), s.CapturedAt.Format(timeLayout))
	}
}

// History prints an asset's samples in the window and the percent change
// across them. An empty window reports "no data" rather than an error.
func (r *Renderer) History(asset domain.Asset, samples []domain.Sample, hours int) {
	fmt.Fprintf(r.Out, "\n%s price history for the last %d hours:\n", title(asset), hours)
	if len(samples) == 0 {
		fmt.Fprintln(r.Out, "No data available for this time period")
		return
	}
	for _, s := range samples {
		fmt.Fprintf(r.Out, "%s: %s\n", s.CapturedAt.Format(timeLayout), money(s.PriceUSD))
	}
	pc, err := domain.PercentChange(samples)
	if err != nil {
		fmt.Fprintf(r.Out, "\nPrice change: unavailable (%v)\n", err)
		return
	}
	fmt.Fprintf(r.Out, "\nPrice change: %.2f%%\n", pc)
}

// Summaries prints the per-asset statistics table.
func (r *Renderer) Summaries(sums []domain.Summary, hours int) {
	fmt.Fprintf(r.Out, "\nSummary Statistics (Last %d Hours):\n", hours)
	if len(sums) == 0 {
		fmt.Fprintln(r.Out, "No data available for this time period")
		return
	}
	w := tabwriter.NewWriter(r.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Cryptocurrency\tCurrent Price\tPrice Change\tHighest Price\tLowest Price\tAverage Volume")
	for _, s := range sums {
		fmt.Fprintf(w, "%s\t%s\t%.2f%%\t%s\t%s\t%s\n",
			title(s.Asset), money(s.CurrentPrice), s.PercentChange,
			money(s.MaxPrice), money(s.MinPrice), money(s.MeanVolume))
	}
	_ = w.Flush()
}

func money(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func title(a domain.Asset) string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sorted(m map[domain.Asset]domain.Sample) []domain.Sample {
	out := make([]domain.Sample, 0, len(m))
	for _, s := range m {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out
}
