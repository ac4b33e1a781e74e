package charts_test

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/charts"
)

func series(asset domain.Asset, prices []float64) []domain.Sample {
	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	out := make([]domain.Sample, 0, len(prices))
	for i, p := range prices {
		out = append(out, domain.Sample{
			Asset:        asset,
			PriceUSD:     p,
			MarketCapUSD: p * 1e6,
			VolumeUSD:    p * 1e4,
			CapturedAt:   base.Add(time.Duration(i) * time.Minute),
		})
	}
	return out
}

func TestTrends_ProducesPNG(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{}
	history := map[domain.Asset][]domain.Sample{
		"bitcoin":  series("bitcoin", []float64{100, 105, 95, 110}),
		"ethereum": series("ethereum", []float64{10, 11, 9, 12}),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Trends(&buf, history, 24))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 1200, img.Bounds().Dx())
	require.Equal(t, 600, img.Bounds().Dy())
}

func TestTrends_NotEnoughData(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{}

	var buf bytes.Buffer
	err := r.Trends(&buf, map[domain.Asset][]domain.Sample{}, 24)
	require.ErrorIs(t, err, charts.ErrNotEnoughData)

	err = r.Trends(&buf, map[domain.Asset][]domain.Sample{
		"bitcoin": series("bitcoin", []float64{100}),
	}, 24)
	require.ErrorIs(t, err, charts.ErrNotEnoughData)
}

func TestComparison_ProducesPNG(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{Width: 800, Height: 400}
	history := map[domain.Asset][]domain.Sample{
		"bitcoin":  series("bitcoin", []float64{100, 110}),
		"ethereum": series("ethereum", []float64{10, 12}),
	}

	var buf bytes.Buffer
	require.NoError(t, r.Comparison(&buf, history, 24))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 800, img.Bounds().Dx())
}

func TestComparison_SkipsZeroBaseAsset(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{}
	history := map[domain.Asset][]domain.Sample{
		"bitcoin": series("bitcoin", []float64{0, 10}),
	}

	var buf bytes.Buffer
	err := r.Comparison(&buf, history, 24)
	require.ErrorIs(t, err, charts.ErrNotEnoughData)
}

func TestMetrics_StacksThreePanels(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{}

	var buf bytes.Buffer
	require.NoError(t, r.Metrics(&buf, "bitcoin", series("bitcoin", []float64{100, 105, 95}), 24))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 1200, img.Bounds().Dx())
	require.Equal(t, 3*320, img.Bounds().Dy())
}

func TestMetrics_NotEnoughData(t *testing.T) {
	t.Parallel()

	r := &charts.Renderer{}

	var buf bytes.Buffer
	err := r.Metrics(&buf, "bitcoin", series("bitcoin", []float64{100}), 24)
	require.ErrorIs(t, err, charts.ErrNotEnoughData)
}
