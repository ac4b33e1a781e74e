package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"coinwatch/internal/bootstrap"
	"coinwatch/internal/infrastructure/console"
	"coinwatch/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	hours := flag.Int("hours", 24, "lookback window in hours")
	flag.Parse()

	log := logx.L()
	ctx := context.Background()

	app, cleanup, err := bootstrap.InitApp(ctx)
	if err != nil {
		log.Fatal("init", zap.Error(err))
	}
	defer cleanup()

	history, err := app.Service.History(ctx, app.Service.Since(*hours))
	if err != nil {
		log.Fatal("load history", zap.Error(err))
	}

	render := console.NewRenderer(os.Stdout)
	for _, asset := range app.Assets {
		render.History(asset, history[asset], *hours)
	}
}
