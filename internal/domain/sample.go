package domain

import (
	"errors"
	"time"
)

// Sample is one persisted observation of an asset's market state. Rows are
// append-only: never updated, never deleted, and duplicates on
// (asset, captured_at) are permitted when polling overlaps.
type Sample struct {
	ID           int64
	Asset        Asset
	PriceUSD     float64
	MarketCapUSD float64
	VolumeUSD    float64
	CapturedAt   time.Time
}

func (s Sample) Validate() error {
	if s.Asset == "" {
		return errors.New("asset is required")
	}
	if !ValidAsset(s.Asset) {
		return errors.New("invalid asset id")
	}
	if s.PriceUSD <= 0 {
		return errors.New("price must be positive")
	}
	if s.MarketCapUSD < 0 {
		return errors.New("market cap must not be negative")
	}
	if s.VolumeUSD < 0 {
		return errors.New("volume must not be negative")
	}
	if s.CapturedAt.IsZero() {
		return errors.New("captured_at is required")
	}
	return nil
}
