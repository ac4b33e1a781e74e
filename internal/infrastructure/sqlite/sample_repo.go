package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
)

// timeLayout is the stored captured_at text format. Constant width, so
// string comparison orders chronologically.
const timeLayout = "2006-01-02 15:04:05"

type SampleRepo struct{ db *DB }

var _ application.SampleRepo = (*SampleRepo)(nil)

func NewSampleRepo(db *DB) *SampleRepo { return &SampleRepo{db: db} }

func (r *SampleRepo) Insert(ctx context.Context, s domain.Sample) (int64, error) {
	const q = `
        INSERT INTO crypto_prices(asset, price_usd, market_cap_usd, volume_usd, captured_at)
        VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.SQL.ExecContext(ctx, q,
		string(s.Asset), s.PriceUSD, s.MarketCapUSD, s.VolumeUSD,
		s.CapturedAt.Local().Format(timeLayout))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SampleRepo) LatestPerAsset(ctx context.Context) (map[domain.Asset]domain.Sample, error) {
	const q = `
        SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at FROM (
            SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at,
                   ROW_NUMBER() OVER (PARTITION BY asset ORDER BY captured_at DESC, id DESC) AS rn
            FROM crypto_prices
        ) WHERE rn = 1`
	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	latest := make(map[domain.Asset]domain.Sample)
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		latest[s.Asset] = s
	}
	return latest, rows.Err()
}

func (r *SampleRepo) Range(ctx context.Context, since time.Time) ([]domain.Sample, error) {
	const q = `
        SELECT id, asset, price_usd, market_cap_usd, volume_usd, captured_at
        FROM crypto_prices
        WHERE captured_at >= ?
        ORDER BY captured_at ASC, id ASC`
	rows, err := r.db.SQL.QueryContext(ctx, q, since.Local().Format(timeLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SampleRepo) CountSamples(ctx context.Context) (int64, error) {
	const q = `SELECT COUNT(*) FROM crypto_prices`
	var n int64
	if err := r.db.SQL.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func scanSample(rows *sql.Rows) (domain.Sample, error) {
	var (
		s     domain.Sample
		asset string
		at    string
	)
	if err := rows.Scan(&s.ID, &asset, &s.PriceUSD, &s.MarketCapUSD, &s.VolumeUSD, &at); err != nil {
		return domain.Sample{}, err
	}
	ts, err := time.ParseInLocation(timeLayout, at, time.Local)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("parse captured_at %q: %w", at, err)
	}
	s.Asset = domain.Asset(asset)
	s.CapturedAt = ts
	return s, nil
}
