package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"coinwatch/internal/bootstrap"
	"coinwatch/internal/config"
	infraconfig "coinwatch/internal/infrastructure/config"
	httpserver "coinwatch/internal/infrastructure/http"
	"coinwatch/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	addrFlag := flag.String("addr", "", "listen address, overrides PORT")
	flag.Parse()

	ctx := context.Background()
	logger := logx.L()
	cfg := config.Load()
	addr := ":" + cfg.Port
	if *addrFlag != "" {
		addr = *addrFlag
	}

	srv, cleanup, err := bootstrap.InitDashboard(ctx)
	if err != nil {
		logger.Fatal("bootstrap dashboard", zap.Error(err))
	}
	defer cleanup()

	server := &http.Server{
		Addr:    addr,
		Handler: httpserver.NewRouter(srv),
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
