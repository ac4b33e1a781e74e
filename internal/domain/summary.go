package domain

import "time"

// Summary aggregates one asset's samples over a query window.
type Summary struct {
	Asset         Asset
	CurrentPrice  float64
	PercentChange float64
	MaxPrice      float64
	MinPrice      float64
	MeanVolume    float64
	SampleCount   int
	FirstAt       time.Time
	LastAt        time.Time
}

// PercentChange is the relative price change between the chronologically
// first and last sample, in percent. The input must already be time-ordered.
// Returns ErrNoSamples on empty input and ErrZeroBasePrice when the first
// price is exactly zero.
func PercentChange(samples []Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	first := samples[0].PriceUSD
	last := samples[len(samples)-1].PriceUSD
	if first == 0 {
		return 0, ErrZeroBasePrice
	}
	return (last - first) / first * 100, nil
}

// Summarize computes the window aggregate for one asset's time-ordered
// samples. Callers must skip assets with no rows in the window; an empty
// input returns ErrNoSamples.
func Summarize(asset Asset, samples []Sample) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrNoSamples
	}
	pct, err := PercentChange(samples)
	if err != nil {
		return Summary{}, err
	}

	min, max := samples[0].PriceUSD, samples[0].PriceUSD
	volSum := 0.0
	for _, s := range samples {
		if s.PriceUSD > max {
			max = s.PriceUSD
		}
		if s.PriceUSD < min {
			min = s.PriceUSD
		}
		volSum += s.VolumeUSD
	}

	return Summary{
		Asset:         asset,
		CurrentPrice:  samples[len(samples)-1].PriceUSD,
		PercentChange: pct,
		MaxPrice:      max,
		MinPrice:      min,
		MeanVolume:    volSum / float64(len(samples)),
		SampleCount:   len(samples),
		FirstAt:       samples[0].CapturedAt,
		LastAt:        samples[len(samples)-1].CapturedAt,
	}, nil
}
