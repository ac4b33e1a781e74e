package httpserver_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"coinwatch/internal/domain"
)

// memRepo is an in-memory SampleRepo for handler tests.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.Sample
	err    error
}

func newMemRepo() *memRepo { return &memRepo{nextID: 1} }

func (m *memRepo) add(asset domain.Asset, price float64, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, domain.Sample{
		ID:           m.nextID,
		Asset:        asset,
		PriceUSD:     price,
		MarketCapUSD: price * 1e6,
		VolumeUSD:    price * 1e4,
		CapturedAt:   at,
	})
	m.nextID++
}

func (m *memRepo) Insert(_ context.Context, s domain.Sample) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	s.ID = m.nextID
	m.nextID++
	m.rows = append(m.rows, s)
	return s.ID, nil
}

func (m *memRepo) LatestPerAsset(context.Context) (map[domain.Asset]domain.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	latest := make(map[domain.Asset]domain.Sample)
	for _, r := range m.rows {
		cur, ok := latest[r.Asset]
		if !ok || r.CapturedAt.After(cur.CapturedAt) ||
			(r.CapturedAt.Equal(cur.CapturedAt) && r.ID > cur.ID) {
			latest[r.Asset] = r
		}
	}
	return latest, nil
}

func (m *memRepo) Range(_ context.Context, since time.Time) ([]domain.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Sample
	for _, r := range m.rows {
		if !r.CapturedAt.Before(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CapturedAt.Equal(out[j].CapturedAt) {
			return out[i].CapturedAt.Before(out[j].CapturedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memRepo) CountSamples(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.rows)), nil
}
