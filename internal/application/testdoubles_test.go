package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"coinwatch/internal/domain"
)

// fakeSampleRepo is an in-memory SampleRepo matching the relational
// backends' ordering and tie-break semantics.
type fakeSampleRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []domain.Sample
	failIns error
	failSel error
}

func newFakeSampleRepo() *fakeSampleRepo { return &fakeSampleRepo{nextID: 1} }

func (f *fakeSampleRepo) Insert(_ context.Context, s domain.Sample) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIns != nil {
		return 0, f.failIns
	}
	s.ID = f.nextID
	f.nextID++
	f.rows = append(f.rows, s)
	return s.ID, nil
}

func (f *fakeSampleRepo) LatestPerAsset(context.Context) (map[domain.Asset]domain.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSel != nil {
		return nil, f.failSel
	}
	latest := make(map[domain.Asset]domain.Sample)
	for _, r := range f.rows {
		cur, ok := latest[r.Asset]
		if !ok || r.CapturedAt.After(cur.CapturedAt) ||
			(r.CapturedAt.Equal(cur.CapturedAt) && r.ID > cur.ID) {
			latest[r.Asset] = r
		}
	}
	return latest, nil
}

func (f *fakeSampleRepo) Range(_ context.Context, since time.Time) ([]domain.Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSel != nil {
		return nil, f.failSel
	}
	var out []domain.Sample
	for _, r := range f.rows {
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

func (f *fakeSampleRepo) CountSamples(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSel != nil {
		return 0, f.failSel
	}
	return int64(len(f.rows)), nil
}

type fakeCache struct {
	mu       sync.Mutex
	snapshot map[domain.Asset]domain.Sample
	hit      bool
	getErr   error
	setCalls int
}

func (f *fakeCache) Get(context.Context) (map[domain.Asset]domain.Sample, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.snapshot, f.hit, nil
}

func (f *fakeCache) Set(_ context.Context, latest map[domain.Asset]domain.Sample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshot = latest
	f.hit = true
	f.setCalls++
	return nil
}

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

func mustInsert(t interface{ Fatalf(string, ...any) }, repo *fakeSampleRepo, s domain.Sample) domain.Sample {
	id, err := repo.Insert(context.Background(), s)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	s.ID = id
	return s
}
