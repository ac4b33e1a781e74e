package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPollInterval    = 60 * time.Second
	DefaultSQLitePath      = "crypto_data.db"
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
)
