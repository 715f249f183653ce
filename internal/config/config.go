package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RuntimeBuckets holds the minute boundaries of the duration filter for one
// content category. Short selects runtimes up to Short, long selects runtimes
// from Long, the middle bucket is the span in between. These drifted across
// deployments, so they are configuration rather than constants.
type RuntimeBuckets struct {
	Short int
	Long  int
}

type Config struct {
	BearerToken string
	Region      string
	Locale      string

	HTTPAddr string
	LogLevel string
	WebDir   string

	ProviderCacheTTL     time.Duration
	AvailabilityCacheTTL time.Duration

	MovieRuntime  RuntimeBuckets
	SeriesRuntime RuntimeBuckets
}

// Load reads configuration from the environment. An absent bearer token is
// deliberately not a load error: the process must start and answer /api/health
// with token_present=false, degrading upstream-backed endpoints per call.
func Load() (Config, error) {
	cfg := Config{
		BearerToken: envFirst("TMDB_BEARER_TOKEN", "TMDB_BEARER"),
		Region:      strings.TrimSpace(os.Getenv("WATCH_REGION")),
		Locale:      envFirst("LOCALE", "LANG"),
		HTTPAddr:    strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		LogLevel:    strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		WebDir:      os.Getenv("WEB_DIR"),
	}

	if cfg.Region == "" {
		cfg.Region = "FR"
	}
	if cfg.Locale == "" || !strings.Contains(cfg.Locale, "-") {
		// LANG on most systems is a POSIX locale ("fr_FR.UTF-8"), not a BCP 47
		// tag; ignore values the upstream API would reject.
		cfg.Locale = "fr-FR"
	}
	if cfg.HTTPAddr == "" {
		if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
			cfg.HTTPAddr = ":" + port
		} else {
			cfg.HTTPAddr = ":8080"
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WebDir == "" {
		if _, ok := os.LookupEnv("WEB_DIR"); !ok {
			cfg.WebDir = "web"
		}
	}

	var err error
	if cfg.ProviderCacheTTL, err = envDuration("PROVIDER_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.AvailabilityCacheTTL, err = envDuration("AVAILABILITY_CACHE_TTL", 6*time.Hour); err != nil {
		return Config{}, err
	}

	if cfg.MovieRuntime, err = envBuckets("MOVIE_RUNTIME", RuntimeBuckets{Short: 100, Long: 140}); err != nil {
		return Config{}, err
	}
	if cfg.SeriesRuntime, err = envBuckets("SERIES_RUNTIME", RuntimeBuckets{Short: 30, Long: 50}); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envFirst(names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(os.Getenv(n)); v != "" {
			return v
		}
	}
	return ""
}

func envDuration(name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", name, d)
	}
	return d, nil
}

func envBuckets(prefix string, def RuntimeBuckets) (RuntimeBuckets, error) {
	b := def
	if raw := strings.TrimSpace(os.Getenv(prefix + "_SHORT")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return RuntimeBuckets{}, fmt.Errorf("%s_SHORT: invalid minute value %q", prefix, raw)
		}
		b.Short = n
	}
	if raw := strings.TrimSpace(os.Getenv(prefix + "_LONG")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return RuntimeBuckets{}, fmt.Errorf("%s_LONG: invalid minute value %q", prefix, raw)
		}
		b.Long = n
	}
	if b.Short >= b.Long {
		return RuntimeBuckets{}, fmt.Errorf("%s: short bound %d must be below long bound %d", prefix, b.Short, b.Long)
	}
	return b, nil
}
