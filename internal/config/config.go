package config

import (
	"os"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr          string
	Env           string
	APIBaseURL    string
	AssetBaseURL  string
	RedisAddr     string
	SessionSecret string
	CORSOrigin    string
	CartDebounce  time.Duration
}

// Load reads configuration from environment variables. Defaults are
// suitable for local development against the live upstream API.
func Load() Config {
	return Config{
		Addr:          getenv("BAZAR_ADDR", ":8080"),
		Env:           getenv("BAZAR_ENV", "dev"),
		APIBaseURL:    getenv("BAZAR_API_BASE_URL", "https://app.anginarbazar.com/api"),
		AssetBaseURL:  getenv("BAZAR_ASSET_BASE_URL", "https://app.anginarbazar.com/uploads/images"),
		RedisAddr:     getenv("BAZAR_REDIS_ADDR", ""),
		SessionSecret: getenv("BAZAR_SESSION_SECRET", "dev-only-secret"),
		CORSOrigin:    getenv("BAZAR_CORS_ORIGIN", "*"),
		CartDebounce:  getduration("BAZAR_CART_DEBOUNCE", 500*time.Millisecond),
	}
}

// IsProd reports whether the app runs in production mode.
func (c Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
