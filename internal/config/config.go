// Package config loads runtime configuration from the environment. Both
// DATABASE_URL and GEMINI_API_KEY are optional on purpose: a missing value
// downgrades the matching feature instead of refusing to start.
package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey string
	GeminiModel  string

	// InsightTxTimeout bounds the profile-update transaction, which can hold
	// a Gemini call open; keep it well above the model's typical latency.
	InsightTxTimeout time.Duration
	// InsightRefreshTTL is how long an insight row stays fresh.
	InsightRefreshTTL time.Duration
	// RefreshCron is the schedule for the background stale-insight sweep.
	RefreshCron string
}

func Load() *Config {
	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("insight_tx_timeout", "10s")
	v.SetDefault("insight_refresh_ttl", "168h")
	v.SetDefault("refresh_cron", "@every 12h")
	v.AutomaticEnv()

	return &Config{
		Port:              v.GetString("port"),
		DatabaseURL:       v.GetString("database_url"),
		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GeminiModel:       v.GetString("gemini_model"),
		InsightTxTimeout:  v.GetDuration("insight_tx_timeout"),
		InsightRefreshTTL: v.GetDuration("insight_refresh_ttl"),
		RefreshCron:       v.GetString("refresh_cron"),
	}
}
