package application

import (
	"context"

	"coinwatch/internal/domain"
)

// LatestCache optionally fronts LatestPerAsset reads with a short-lived
// snapshot. It never sits in front of range or summary queries and never
// touches the write path; with the noop implementation every read goes to
// the store.
type LatestCache interface {
	// Get returns the cached snapshot and true on a hit.
	Get(ctx context.Context) (map[domain.Asset]domain.Sample, bool, error)
	Set(ctx context.Context, latest map[domain.Asset]domain.Sample) error
}

// NoopLatestCache misses on every read; useful when caching is disabled.
type NoopLatestCache struct{}

func (NoopLatestCache) Get(context.Context) (map[domain.Asset]domain.Sample, bool, error) {
	return nil, false, nil
}

func (NoopLatestCache) Set(context.Context, map[domain.Asset]domain.Sample) error { return nil }
