package logx

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"coinwatch/internal/config"
)

var (
	logger *zap.Logger
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

func init() {
	logger = build(config.Load())
}

func build(cfg config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		_ = level.UnmarshalText([]byte(strings.ToLower(cfg.LogLevel)))
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}
	if cfg.LogFile != "" {
		rotating := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), rotating, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// WithRequestID stores the request id for later retrieval by WithFields.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// WithFields enriches logs with the request id carried by the context.
func WithFields(ctx context.Context) *zap.Logger {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}
