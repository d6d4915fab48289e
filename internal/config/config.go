// README: Config loader with env defaults for HTTP, places provider, AI, DB and Redis settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Places provider backends.
const (
	ProviderPlacesV1   = "places_v1"
	ProviderMapsLegacy = "maps_legacy"
)

// ErrMissingPlacesKey is returned by Load when GOOGLE_PLACES_API_KEY is unset.
var ErrMissingPlacesKey = errors.New("environment variable GOOGLE_PLACES_API_KEY is required")

type PlacesConfig struct {
	APIKey   string
	BaseURL  string
	Provider string
	Timeout  time.Duration
}

type SearchConfig struct {
	DefaultMaxResults   int
	DefaultRadiusMeters float64
	LanguageCode        string
}

type Config struct {
	Env      string
	LogLevel string
	HTTP     struct {
		Addr        string
		CORSOrigins []string
	}
	Places PlacesConfig
	Search SearchConfig
	DB     struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	AI struct {
		GeminiKey     string
		WishlistQuota int
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.Env = envOrDefault("VAMU_ENV", "development")
	cfg.LogLevel = envOrDefault("VAMU_LOG_LEVEL", "info")
	cfg.HTTP.Addr = envOrDefault("VAMU_HTTP_ADDR", ":8001")
	cfg.HTTP.CORSOrigins = envList("VAMU_CORS_ORIGINS")

	cfg.Places.APIKey = os.Getenv("GOOGLE_PLACES_API_KEY")
	cfg.Places.BaseURL = envOrDefault("GOOGLE_PLACES_BASE_URL", "https://places.googleapis.com/v1")
	cfg.Places.Provider = envOrDefault("VAMU_PLACES_PROVIDER", ProviderPlacesV1)
	cfg.Places.Timeout = envOrDefaultDuration("VAMU_PROVIDER_TIMEOUT", 10*time.Second)

	cfg.Search.DefaultMaxResults = envOrDefaultInt("VAMU_DEFAULT_MAX_RESULTS", 8)
	cfg.Search.DefaultRadiusMeters = envOrDefaultFloat("VAMU_DEFAULT_RADIUS_M", 5000)
	cfg.Search.LanguageCode = envOrDefault("VAMU_LANGUAGE", "en-US")

	cfg.DB.DSN = os.Getenv("VAMU_DB_DSN")
	cfg.Redis.Addr = os.Getenv("VAMU_REDIS_ADDR")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.WishlistQuota = envOrDefaultInt("VAMU_WISHLIST_MONTHLY_QUOTA", 100)

	if strings.TrimSpace(cfg.Places.APIKey) == "" {
		return cfg, ErrMissingPlacesKey
	}
	if cfg.Places.Provider != ProviderPlacesV1 && cfg.Places.Provider != ProviderMapsLegacy {
		return cfg, errors.New("VAMU_PLACES_PROVIDER must be " + ProviderPlacesV1 + " or " + ProviderMapsLegacy)
	}
	if cfg.Search.DefaultMaxResults < 1 || cfg.Search.DefaultMaxResults > 20 {
		return cfg, errors.New("VAMU_DEFAULT_MAX_RESULTS must be between 1 and 20")
	}
	if cfg.Search.DefaultRadiusMeters <= 0 || cfg.Search.DefaultRadiusMeters > 50000 {
		return cfg, errors.New("VAMU_DEFAULT_RADIUS_M must be in (0, 50000]")
	}
	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
