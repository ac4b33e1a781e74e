package provider_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/provider"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func httpClient(resBody string, code int) *http.Client {
	return &http.Client{
		Timeout: 2 * time.Second,
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: code,
				Body:       io.NopCloser(strings.NewReader(resBody)),
				Header:     make(http.Header),
				Request:    r,
			}, nil
		}),
	}
}

const sampleOK = `{
  "bitcoin":  {"usd": 50000.25, "usd_market_cap": 1.0e12, "usd_24h_vol": 3.0e10},
  "ethereum": {"usd": 3000.50,  "usd_market_cap": 4.0e11, "usd_24h_vol": 1.5e10}
}`

func TestFetch_HappyPath(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(sampleOK, 200),
	}
	points, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin", "ethereum"})
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.InDelta(t, 50000.25, points["bitcoin"].PriceUSD, 0.0001)
	require.InDelta(t, 1.0e12, points["bitcoin"].MarketCapUSD, 1)
	require.InDelta(t, 3.0e10, points["bitcoin"].VolumeUSD, 1)
	require.InDelta(t, 3000.50, points["ethereum"].PriceUSD, 0.0001)
}

func TestFetch_RequestShape(t *testing.T) {
	var captured *http.Request
	client := &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			captured = r
			return &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(sampleOK)),
				Header:     make(http.Header),
			}, nil
		}),
	}
	p := &provider.CoinGeckoProvider{BaseURL: "https://api.coingecko.com", Client: client}

	_, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin", "ethereum"})
	require.NoError(t, err)
	require.NotNil(t, captured)
	require.Equal(t, "/api/v3/simple/price", captured.URL.Path)

	q := captured.URL.Query()
	require.Equal(t, "bitcoin,ethereum", q.Get("ids"))
	require.Equal(t, "usd", q.Get("vs_currencies"))
	require.Equal(t, "true", q.Get("include_market_cap"))
	require.Equal(t, "true", q.Get("include_24hr_vol"))
}

func TestFetch_UnknownAssetSkipped(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(`{"bitcoin": {"usd": 100}}`, 200),
	}
	points, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin", "dogecoin"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Contains(t, points, domain.Asset("bitcoin"))
	require.NotContains(t, points, domain.Asset("dogecoin"))
}

func TestFetch_Non200(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(`{"status": {"error_code": 429}}`, 429),
	}
	_, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestFetch_NetworkError(t *testing.T) {
	client := &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		}),
	}
	p := &provider.CoinGeckoProvider{BaseURL: "https://api.coingecko.com", Client: client}

	_, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin"})
	require.Error(t, err)
}

func TestFetch_MalformedJSON(t *testing.T) {
	p := &provider.CoinGeckoProvider{
		BaseURL: "https://api.coingecko.com",
		Client:  httpClient(`{"bitcoin": `, 200),
	}
	_, err := p.Fetch(context.Background(), []domain.Asset{"bitcoin"})
	require.Error(t, err)
}

func TestFetch_NoAssets(t *testing.T) {
	p := &provider.CoinGeckoProvider{BaseURL: "https://api.coingecko.com"}

	points, err := p.Fetch(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, points)
}

func TestFake_FiltersToRequestedAssets(t *testing.T) {
	f := provider.NewFake(map[domain.Asset]application.PricePoint{
		"bitcoin":  {PriceUSD: 100},
		"ethereum": {PriceUSD: 10},
	})

	points, err := f.Fetch(context.Background(), []domain.Asset{"bitcoin"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.Equal(t, 100.0, points["bitcoin"].PriceUSD)
}
