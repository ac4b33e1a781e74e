package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coinwatch/internal/domain"
)

// PriceService is the read side over the sample store. The tracker worker
// writes samples; the console, chart and dashboard surfaces all go through
// this service.
type PriceService struct {
	samples SampleRepo
	cache   LatestCache
	clock   Clock
}

// Option configures optional collaborators on the service.
type Option func(*PriceService)

// WithLatestCache fronts LatestPrices with the given cache. Cache failures
// fall through to the store.
func WithLatestCache(c LatestCache) Option {
	return func(s *PriceService) { s.cache = c }
}

// WithClock overrides the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(s *PriceService) { s.clock = c }
}

func NewPriceService(samples SampleRepo, opts ...Option) *PriceService {
	s := &PriceService{
		samples: samples,
		cache:   NoopLatestCache{},
		clock:   RealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LatestPrices returns the most recent stored sample per asset. Assets with
// no samples are absent from the result. A cache hit short-circuits the
// store; cache errors are ignored and the store is queried instead.
func (s *PriceService) LatestPrices(ctx context.Context) (map[domain.Asset]domain.Sample, error) {
	if latest, ok, err := s.cache.Get(ctx); err == nil && ok {
		return latest, nil
	}
	latest, err := s.samples.LatestPerAsset(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest per asset: %w", err)
	}
	_ = s.cache.Set(ctx, latest)
	return latest, nil
}

// History returns all samples captured at or after since, grouped per asset.
// Within each asset the slice keeps the store's ascending capture order.
// Assets with no samples in the window are absent from the result.
func (s *PriceService) History(ctx context.Context, since time.Time) (map[domain.Asset][]domain.Sample, error) {
	rows, err := s.samples.Range(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("range since %s: %w", since.Format("2006-01-02 15:04:05"), err)
	}
	byAsset := make(map[domain.Asset][]domain.Sample)
	for _, sm := range rows {
		byAsset[sm.Asset] = append(byAsset[sm.Asset], sm)
	}
	return byAsset, nil
}

// Summaries computes per-asset window statistics over samples captured at or
// after since. Assets with no samples in the window, or whose oldest sample
// has a zero price, are silently omitted. The result keeps the order of the
// assets argument.
func (s *PriceService) Summaries(ctx context.Context, since time.Time, assets []domain.Asset) ([]domain.Summary, error) {
	history, err := s.History(ctx, since)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Summary, 0, len(assets))
	for _, asset := range assets {
		sum, err := domain.Summarize(asset, history[asset])
		if err != nil {
			if errors.Is(err, domain.ErrNoSamples) || errors.Is(err, domain.ErrZeroBasePrice) {
				continue
			}
			return nil, fmt.Errorf("summarize %s: %w", asset, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

// SampleCount reports the total number of stored samples.
func (s *PriceService) SampleCount(ctx context.Context) (int64, error) {
	n, err := s.samples.CountSamples(ctx)
	if err != nil {
		return 0, fmt.Errorf("count samples: %w", err)
	}
	return n, nil
}

// Since converts a lookback window into an absolute cutoff on the service
// clock. Hours at or below zero mean the whole history.
func (s *PriceService) Since(hours int) time.Time {
	if hours <= 0 {
		return time.Time{}
	}
	return s.clock.Now().Add(-time.Duration(hours) * time.Hour)
}
