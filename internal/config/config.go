package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	infraconfig "coinwatch/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	LogFile  string
	// Dashboard
	Port        string
	MetricsAddr string
	// Storage
	Storage     string
	SQLitePath  string
	DatabaseURL string
	// Provider
	Provider       string
	APIBase        string
	RequestTimeout time.Duration
	// Tracker
	Assets       []string
	PollInterval time.Duration
	// Cache (latest prices only)
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:            getEnv("ENV", "local"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		Port:           getEnv("PORT", infraconfig.DefaultHTTPPort),
		MetricsAddr:    getEnv("METRICS_ADDR", ""),
		Storage:        getEnv("STORAGE", "sqlite"),
		SQLitePath:     getEnv("SQLITE_PATH", infraconfig.DefaultSQLitePath),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		Provider:       getEnv("PROVIDER", "coingecko"),
		APIBase:        getEnv("COINGECKO_API_BASE", "https://api.coingecko.com"),
		RequestTimeout: time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "10000"), 10000)) * time.Millisecond,
		Assets:         splitCSV(getEnv("ASSETS", "bitcoin,ethereum")),
		PollInterval:   time.Duration(atoiDef(getEnv("POLL_INTERVAL_SECONDS", "60"), 60)) * time.Second,
		CacheBackend:   getEnv("CACHE_BACKEND", "none"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        atoiDef(getEnv("REDIS_DB", "0"), 0),
		CacheTTL:       time.Duration(atoiDef(getEnv("CACHE_TTL_MS", "30000"), 30000)) * time.Millisecond,
	}
}
