package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"coinwatch/internal/bootstrap"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/console"
	"coinwatch/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	interval := flag.Int("interval", 0, "poll interval in seconds (overrides POLL_INTERVAL_SECONDS)")
	flag.Parse()

	log := logx.L()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trk, app, cleanup, err := bootstrap.InitTracker(ctx)
	if err != nil {
		log.Fatal("init tracker", zap.Error(err))
	}
	defer cleanup()

	if *interval > 0 {
		trk.Interval = time.Duration(*interval) * time.Second
	}

	render := console.NewRenderer(os.Stdout)
	trk.Display = func(samples map[domain.Asset]domain.Sample) {
		at := time.Now()
		for _, s := range samples {
			at = s.CapturedAt
			break
		}
		render.Cycle(samples, at)
		latest, err := app.Service.LatestPrices(ctx)
		if err != nil {
			log.Warn("load latest for display", zap.Error(err))
			return
		}
		render.Latest(latest)
	}

	if addr := app.Cfg.MetricsAddr; addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info("metrics listener started", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Warn("metrics listener", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	if err := trk.Start(ctx); err != nil {
		log.Fatal("tracker exited", zap.Error(err))
	}
	log.Info("tracker stopped")
}
