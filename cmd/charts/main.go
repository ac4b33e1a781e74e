package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"coinwatch/internal/bootstrap"
	"coinwatch/internal/domain"
	"coinwatch/internal/infrastructure/charts"
	"coinwatch/internal/infrastructure/console"
	"coinwatch/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	hours := flag.Int("hours", 24, "lookback window in hours")
	out := flag.String("out", ".", "directory for generated PNG files")
	flag.Parse()

	log := logx.L()
	ctx := context.Background()

	app, cleanup, err := bootstrap.InitApp(ctx)
	if err != nil {
		log.Fatal("init", zap.Error(err))
	}
	defer cleanup()

	fmt.Println("Generating cryptocurrency visualizations...")

	since := app.Service.Since(*hours)
	history, err := app.Service.History(ctx, since)
	if err != nil {
		log.Fatal("load history", zap.Error(err))
	}

	r := &charts.Renderer{}
	if renderFile(filepath.Join(*out, "price_trends.png"), log, func(f *os.File) error {
		return r.Trends(f, history, *hours)
	}) {
		fmt.Println("✓ Generated price trends plot")
	}
	if renderFile(filepath.Join(*out, "price_comparison.png"), log, func(f *os.File) error {
		return r.Comparison(f, history, *hours)
	}) {
		fmt.Println("✓ Generated price comparison plot")
	}
	for _, asset := range app.Assets {
		path := filepath.Join(*out, fmt.Sprintf("%s_metrics.png", asset))
		if renderFile(path, log, func(f *os.File) error {
			return r.Metrics(f, asset, history[asset], *hours)
		}) {
			fmt.Printf("✓ Generated %s market metrics\n", title(asset))
		}
	}

	sums, err := app.Service.Summaries(ctx, since, app.Assets)
	if err != nil {
		log.Fatal("load summaries", zap.Error(err))
	}
	console.NewRenderer(os.Stdout).Summaries(sums, *hours)
}

// renderFile writes one chart, reporting whether a file was produced. A
// window with too few samples is announced and skipped, not treated as a
// failure.
func renderFile(path string, log *zap.Logger, render func(*os.File) error) bool {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("create chart file", zap.String("path", path), zap.Error(err))
	}
	renderErr := render(f)
	closeErr := f.Close()
	if errors.Is(renderErr, charts.ErrNotEnoughData) {
		_ = os.Remove(path)
		fmt.Println("No data available for this time period")
		return false
	}
	if renderErr != nil {
		_ = os.Remove(path)
		log.Fatal("render chart", zap.String("path", path), zap.Error(renderErr))
	}
	if closeErr != nil {
		log.Fatal("close chart file", zap.String("path", path), zap.Error(closeErr))
	}
	return true
}

func title(a domain.Asset) string {
	s := string(a)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
