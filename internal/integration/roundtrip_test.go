package integration

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	httpserver "coinwatch/internal/infrastructure/http"
	"coinwatch/internal/infrastructure/provider"
	"coinwatch/internal/infrastructure/sqlite"
	"coinwatch/internal/infrastructure/worker"
)

type manualClock struct{ at time.Time }

func (c *manualClock) Now() time.Time { return c.at }

// TestRoundTrip drives the full pipeline in process: poll a fake provider
// into a real sqlite store, then read the data back through the service
// and the dashboard's HTTP API.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "roundtrip.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.RunMigrations(db))

	repo := sqlite.NewSampleRepo(db)
	assets := []domain.Asset{"bitcoin", "ethereum"}

	clock := &manualClock{at: time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)}
	fake := provider.NewFake(map[domain.Asset]application.PricePoint{
		"bitcoin":  {PriceUSD: 50000, MarketCapUSD: 1e12, VolumeUSD: 3e10},
		"ethereum": {PriceUSD: 3000, MarketCapUSD: 4e11, VolumeUSD: 1.5e10},
	})
	trk := &worker.Tracker{
		Samples:  repo,
		Provider: fake,
		Assets:   assets,
		Clock:    clock,
	}

	require.NoError(t, trk.PollOnce(ctx))
	clock.at = clock.at.Add(30 * time.Minute)
	require.NoError(t, trk.PollOnce(ctx))

	svc := application.NewPriceService(repo)

	latest, err := svc.LatestPrices(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	require.True(t, latest["bitcoin"].CapturedAt.Equal(clock.at))
	require.Equal(t, 50000.0, latest["bitcoin"].PriceUSD)

	history, err := svc.History(ctx, svc.Since(24))
	require.NoError(t, err)
	require.Len(t, history["bitcoin"], 2)
	require.Len(t, history["ethereum"], 2)
	require.True(t, history["bitcoin"][0].CapturedAt.Before(history["bitcoin"][1].CapturedAt))

	sums, err := svc.Summaries(ctx, svc.Since(24), assets)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	require.Equal(t, domain.Asset("bitcoin"), sums[0].Asset)
	require.Equal(t, 2, sums[0].SampleCount)
	require.Equal(t, 0.0, sums[0].PercentChange)

	srv := httpserver.NewServer(svc, assets, httpserver.WithPing(db.Ping))
	ts := httptest.NewServer(httpserver.NewRouter(srv))
	t.Cleanup(ts.Close)

	res, err := http.Get(ts.URL + "/readyz")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, err = http.Get(ts.URL + "/api/prices/latest")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var latestBody struct {
		Latest []struct {
			Asset    string  `json:"asset"`
			PriceUSD float64 `json:"price_usd"`
		} `json:"latest"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&latestBody))
	require.Len(t, latestBody.Latest, 2)
	require.Equal(t, "bitcoin", latestBody.Latest[0].Asset)
	require.Equal(t, 50000.0, latestBody.Latest[0].PriceUSD)

	res, err = http.Get(ts.URL + "/api/prices/history?hours=24")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var historyBody struct {
		Hours  int `json:"hours"`
		Series []struct {
			Asset   string `json:"asset"`
			Samples []struct {
				PriceUSD float64 `json:"price_usd"`
			} `json:"samples"`
		} `json:"series"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&historyBody))
	require.Equal(t, 24, historyBody.Hours)
	require.Len(t, historyBody.Series, 2)
	require.Len(t, historyBody.Series[0].Samples, 2)

	res, err = http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	page, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Contains(t, string(page), "Cryptocurrency Real-Time Dashboard")
}
