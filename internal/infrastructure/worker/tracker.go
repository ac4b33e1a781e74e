package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"coinwatch/internal/application"
	"coinwatch/internal/domain"
	infraconfig "coinwatch/internal/infrastructure/config"
	"coinwatch/internal/infrastructure/metrics"
)

var _ application.Worker = (*Tracker)(nil)

// Tracker drives the fetch-persist-display loop. A failed fetch is logged
// and the loop continues at the next interval; a failed insert is fatal and
// propagates out of Start.
type Tracker struct {
	Samples  application.SampleRepo
	Provider application.PriceProvider

	Assets   []domain.Asset
	Interval time.Duration
	// Display, when set, receives the samples inserted by each cycle.
	Display func(map[domain.Asset]domain.Sample)
	Clock   application.Clock
	Log     *zap.Logger
}

func (w *Tracker) Start(ctx context.Context) error {
	log := w.logger()
	interval := w.Interval
	if interval <= 0 {
		interval = infraconfig.DefaultPollInterval
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	log.Info("tracker_started",
		zap.Duration("interval", interval),
		zap.Int("assets", len(w.assets())))

	// First cycle runs immediately instead of waiting a full interval.
	if err := w.PollOnce(ctx); err != nil {
		if ctx.Err() != nil {
			log.Info("tracker_stopped")
			return nil
		}
		return err
	}
	for {
		select {
		case <-ctx.Done():
			log.Info("tracker_stopped")
			return nil
		case <-t.C:
			if err := w.PollOnce(ctx); err != nil {
				if ctx.Err() != nil {
					log.Info("tracker_stopped")
					return nil
				}
				return err
			}
		}
	}
}

// PollOnce runs one fetch-persist-display cycle. Provider failures are
// swallowed after logging; store failures are returned.
func (w *Tracker) PollOnce(ctx context.Context) error {
	log := w.logger()
	assets := w.assets()

	begin := time.Now()
	points, err := w.Provider.Fetch(ctx, assets)
	metrics.FetchDuration.Observe(time.Since(begin).Seconds())
	metrics.PollCycles.Inc()
	if err != nil {
		metrics.FetchFailures.Inc()
		log.Warn("fetch_failed", zap.Error(err))
		return nil
	}

	capturedAt := w.clock().Now().Truncate(time.Second)
	inserted := make(map[domain.Asset]domain.Sample, len(points))
	for _, asset := range assets {
		pt, ok := points[asset]
		if !ok {
			log.Warn("asset_missing_from_fetch", zap.String("asset", string(asset)))
			continue
		}
		s := domain.Sample{
			Asset:        asset,
			PriceUSD:     pt.PriceUSD,
			MarketCapUSD: pt.MarketCapUSD,
			VolumeUSD:    pt.VolumeUSD,
			CapturedAt:   capturedAt,
		}
		if err := s.Validate(); err != nil {
			log.Warn("sample_invalid", zap.String("asset", string(asset)), zap.Error(err))
			continue
		}
		id, err := w.Samples.Insert(ctx, s)
		if err != nil {
			return fmt.Errorf("insert %s: %w", asset, err)
		}
		s.ID = id
		inserted[asset] = s
		metrics.SamplesInserted.WithLabelValues(string(asset)).Inc()
		log.Info("sample_stored",
			zap.String("asset", string(asset)),
			zap.Float64("price_usd", s.PriceUSD),
			zap.Int64("id", id))
	}

	if w.Display != nil && len(inserted) > 0 {
		w.Display(inserted)
	}
	return nil
}

func (w *Tracker) logger() *zap.Logger {
	if w.Log != nil {
		return w.Log
	}
	return zap.NewNop()
}

func (w *Tracker) clock() application.Clock {
	if w.Clock != nil {
		return w.Clock
	}
	return application.RealClock()
}

func (w *Tracker) assets() []domain.Asset {
	if len(w.Assets) > 0 {
		return w.Assets
	}
	return domain.DefaultAssets()
}
