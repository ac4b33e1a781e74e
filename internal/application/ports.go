package application

import (
	"context"
	"time"

	"coinwatch/internal/domain"
)

// SampleRepo is the append-only store of price samples.
type SampleRepo interface {
	// Insert appends one row and returns its id. A storage failure is fatal
	// to the caller.
	Insert(ctx context.Context, s domain.Sample) (int64, error)
	// LatestPerAsset returns, per asset with at least one row, the row with
	// the maximum captured_at, ties broken by highest insertion id. An empty
	// store yields an empty map.
	LatestPerAsset(ctx context.Context) (map[domain.Asset]domain.Sample, error)
	// Range returns all rows with captured_at >= since across assets,
	// ascending by captured_at (insertion id as secondary key).
	Range(ctx context.Context, since time.Time) ([]domain.Sample, error)
	CountSamples(ctx context.Context) (int64, error)
}

// PricePoint is one asset's current quote as returned by a provider.
type PricePoint struct {
	PriceUSD     float64
	MarketCapUSD float64
	VolumeUSD    float64
}

// PriceProvider fetches current quotes for the whole asset set in one call.
// Assets missing from the result were not returned by the upstream API and
// are skipped by callers; a non-nil error means the entire fetch failed.
type PriceProvider interface {
	Fetch(ctx context.Context, assets []domain.Asset) (map[domain.Asset]PricePoint, error)
}

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// RealClock returns the wall clock used outside tests.
func RealClock() Clock { return realClock{} }
