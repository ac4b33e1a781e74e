package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

const (
	coinGeckoSimplePricePath = "/api/v3/simple/price"
)

type CoinGeckoProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ application.PriceProvider = (*CoinGeckoProvider)(nil)

// cgSimplePrice mirrors the simple/price response: an object keyed by asset
// id, each value carrying the USD quote fields requested via query params.
type cgSimplePrice map[string]struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hVol    float64 `json:"usd_24h_vol"`
}

func (p *CoinGeckoProvider) Fetch(ctx context.Context, assets []domain.Asset) (map[domain.Asset]application.PricePoint, error) {
	if p.BaseURL == "" {
		return nil, errors.New("coingecko: missing base url")
	}
	if len(assets) == 0 {
		return map[domain.Asset]application.PricePoint{}, nil
	}

	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, string(a))
	}

	u, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("coingecko: invalid base url: %w", err)
	}
	u.Path = coinGeckoSimplePricePath
	q := u.Query()
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	q.Set("include_market_cap", "true")
	q.Set("include_24hr_vol", "true")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("coingecko: create request: %w", err)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d", resp.StatusCode)
	}

	var body cgSimplePrice
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("coingecko: decode response: %w", err)
	}

	// Assets the API does not know are absent from the response; skip them
	// rather than failing the whole fetch.
	out := make(map[domain.Asset]application.PricePoint, len(assets))
	for _, a := range assets {
		entry, ok := body[string(a)]
		if !ok {
			continue
		}
		out[a] = application.PricePoint{
			PriceUSD:     entry.USD,
			MarketCapUSD: entry.USDMarketCap,
			VolumeUSD:    entry.USD24hVol,
		}
	}
	return out, nil
}
