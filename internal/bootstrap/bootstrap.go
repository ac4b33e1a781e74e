package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"coinwatch/internal/application"
	"coinwatch/internal/config"
	"coinwatch/internal/domain"
	httpserver "coinwatch/internal/infrastructure/http"
	"coinwatch/internal/infrastructure/logx"
	"coinwatch/internal/infrastructure/pg"
	"coinwatch/internal/infrastructure/provider"
	redisstore "coinwatch/internal/infrastructure/redis"
	"coinwatch/internal/infrastructure/sqlite"
	"coinwatch/internal/infrastructure/worker"
)

// Stores bundles the sample repository with the probe the dashboard's
// readiness endpoint uses.
type Stores struct {
	Samples application.SampleRepo
	Ping    func(context.Context) error
}

// App bundles the read-side pieces every command needs.
type App struct {
	Cfg     config.Config
	Log     *zap.Logger
	Stores  Stores
	Service *application.PriceService
	Assets  []domain.Asset
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideAssets(cfg config.Config) []domain.Asset {
	return domain.ParseAssets(strings.Join(cfg.Assets, ","))
}

// ProvideStores opens the backend selected by STORAGE and runs migrations.
func ProvideStores(ctx context.Context, log *zap.Logger, cfg config.Config) (Stores, func(), error) {
	switch cfg.Storage {
	case "", "sqlite":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return Stores{}, func() {}, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := sqlite.RunMigrations(db); err != nil {
			_ = db.Close()
			return Stores{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing sqlite")
			_ = db.Close()
		}
		return Stores{Samples: sqlite.NewSampleRepo(db), Ping: db.Ping}, cleanup, nil

	case "pg":
		if cfg.DatabaseURL == "" {
			return Stores{}, func() {}, errors.New("DATABASE_URL is required for STORAGE=pg")
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return Stores{}, func() {}, err
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return Stores{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Stores{Samples: pg.NewSampleRepo(db), Ping: db.Ping}, cleanup, nil

	default:
		return Stores{}, func() {}, fmt.Errorf("unsupported STORAGE=%q", cfg.Storage)
	}
}

// ProvidePriceProvider picks the provider backend; "fake" serves fixed
// quotes for local runs without network access.
func ProvidePriceProvider(cfg config.Config) application.PriceProvider {
	switch cfg.Provider {
	case "fake":
		return provider.NewFake(map[domain.Asset]application.PricePoint{
			"bitcoin":  {PriceUSD: 50000, MarketCapUSD: 1e12, VolumeUSD: 3e10},
			"ethereum": {PriceUSD: 3000, MarketCapUSD: 4e11, VolumeUSD: 1.5e10},
		})
	default:
		return &provider.CoinGeckoProvider{
			BaseURL: cfg.APIBase,
			Client:  &http.Client{Timeout: cfg.RequestTimeout},
		}
	}
}

// ProvideLatestCache wires the optional redis snapshot cache; the default
// backend is "none", where every read goes to the store.
func ProvideLatestCache(cfg config.Config) (application.LatestCache, func(), error) {
	if cfg.CacheBackend != "redis" {
		return application.NoopLatestCache{}, func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return redisstore.NewLatestCache(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
}

func ProvidePriceService(st Stores, cache application.LatestCache) *application.PriceService {
	return application.NewPriceService(st.Samples, application.WithLatestCache(cache))
}

// InitApp builds the store, cache and price service shared by the query,
// charts and dashboard commands.
func InitApp(ctx context.Context) (*App, func(), error) {
	log := ProvideLogger()
	cfg := ProvideConfig()

	stores, cleanupDB, err := ProvideStores(ctx, log, cfg)
	if err != nil {
		return nil, nil, err
	}
	cache, cleanupCache, err := ProvideLatestCache(cfg)
	if err != nil {
		cleanupDB()
		return nil, nil, err
	}

	app := &App{
		Cfg:     cfg,
		Log:     log,
		Stores:  stores,
		Service: ProvidePriceService(stores, cache),
		Assets:  ProvideAssets(cfg),
	}
	cleanup := func() {
		cleanupCache()
		cleanupDB()
	}
	return app, cleanup, nil
}

// InitTracker builds the polling worker. Display is left unset so the
// caller can attach console output before Start.
func InitTracker(ctx context.Context) (*worker.Tracker, *App, func(), error) {
	app, cleanup, err := InitApp(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	trk := &worker.Tracker{
		Samples:  app.Stores.Samples,
		Provider: ProvidePriceProvider(app.Cfg),
		Assets:   app.Assets,
		Interval: app.Cfg.PollInterval,
		Log:      app.Log,
	}
	return trk, app, cleanup, nil
}

// InitDashboard builds the HTTP server for the web dashboard.
func InitDashboard(ctx context.Context) (*httpserver.Server, func(), error) {
	app, cleanup, err := InitApp(ctx)
	if err != nil {
		return nil, nil, err
	}
	srv := httpserver.NewServer(app.Service, app.Assets, httpserver.WithPing(app.Stores.Ping))
	return srv, cleanup, nil
}
