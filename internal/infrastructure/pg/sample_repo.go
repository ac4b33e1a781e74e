package pg

import (
	"context"
	"time"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

type SampleRepo struct{ db *DB }

var _ application.SampleRepo = (*SampleRepo)(nil)

func NewSampleRepo(db *DB) *SampleRepo { return &SampleRepo{db: db} }

func (r *SampleRepo) Insert(ctx context.Context, s domain.Sample) (int64, error) {
	const q = `
        INSERT INTO crypto_prices(asset, price_usd, market_cap_usd, volume_usd, captured_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q,
		string(s.Asset), s.PriceUSD, s.MarketCapUSD, s.VolumeUSD,
		s.CapturedAt.Truncate(time.Second)).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SampleRepo) LatestPerAsset(ctx context.Context) (map[domain.Asset]domain.Sample, error) {
	const q = `
        SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at FROM (
            SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at,
                   ROW_NUMBER() OVER (PARTITION BY asset ORDER BY captured_at DESC, id DESC) AS rn
            FROM crypto_prices
        ) t WHERE rn = 1`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	latest := make(map[domain.Asset]domain.Sample)
	for rows.Next() {
		var (
			s     domain.Sample
			asset string
		)
		if err := rows.Scan(&s.ID, &asset, &s.PriceUSD, &s.MarketCapUSD, &s.VolumeUSD, &s.CapturedAt); err != nil {
			return nil, err
		}
		s.Asset = domain.Asset(asset)
		latest[s.Asset] = s
	}
	return latest, rows.Err()
}

func (r *SampleRepo) Range(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	const q = `
        SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at
        FROM crypto_prices
        WHERE captured_at >= $1
        ORDER BY captured_at ASC, id ASC`
	rows, err := r.db.Pool.Query(ctx, q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Sample
	for rows.Next() {
		var (
			s     domain.Sample
			asset string
		)
		if err := rows.Scan(&s.ID, &asset, &s.PriceUSD, &s.MarketCapUSD, &s.VolumeUSD, &s.CapturedAt); err != nil {
			return nil, err
		}
		s.Asset = domain.Asset(asset)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SampleRepo) CountSamples(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM crypto_prices`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
