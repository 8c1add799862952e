// Package config loads runtime settings from the environment.
// Command-line flags override whatever Load returns.
package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aretw0/surveyflow/pkg/domain"
)

// Environment variables read by Load.
const (
	EnvCallbackURL    = "SURVEYFLOW_CALLBACK_URL"
	EnvAddr           = "SURVEYFLOW_ADDR"
	EnvRedisURL       = "SURVEYFLOW_REDIS_URL"
	EnvCacheTTL       = "SURVEYFLOW_CACHE_TTL"
	EnvRateLimit      = "SURVEYFLOW_RATE_LIMIT"
	EnvRateBurst      = "SURVEYFLOW_RATE_BURST"
	EnvMaxInputSize   = "SURVEYFLOW_MAX_INPUT_SIZE"
	EnvRequestTimeout = "SURVEYFLOW_REQUEST_TIMEOUT"
	EnvLogLevel       = "SURVEYFLOW_LOG_LEVEL"
	EnvEncryptionKey  = "SURVEYFLOW_ENCRYPTION_KEY"
)

// encryptionKeySize is the AES-256 key length expected in EnvEncryptionKey.
const encryptionKeySize = 32

// Config holds every runtime setting.
type Config struct {
	CallbackURL string
	Addr        string
	RedisURL    string
	CacheTTL    time.Duration

	// RateLimit is the sustained number of HTTP requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int

	MaxInputSize   int64
	RequestTimeout time.Duration
	LogLevel       string

	// EncryptionKey seals cached workflows at rest when set. It is read base64 encoded.
	EncryptionKey []byte
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		CallbackURL:    domain.DefaultCallbackURL,
		Addr:           ":8080",
		CacheTTL:       24 * time.Hour,
		RateLimit:      20,
		RateBurst:      40,
		MaxInputSize:   1 << 20,
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
	}
}

// Load returns Default overridden by the SURVEYFLOW_* environment variables.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str(EnvCallbackURL, &cfg.CallbackURL)
	str(EnvAddr, &cfg.Addr)
	str(EnvRedisURL, &cfg.RedisURL)
	str(EnvLogLevel, &cfg.LogLevel)

	if v, ok := lookup(EnvCacheTTL); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		cfg.CacheTTL = d
	}
	if v, ok := lookup(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := lookup(EnvRateLimit); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return cfg, fmt.Errorf("%s: invalid rate %q", EnvRateLimit, v)
		}
		cfg.RateLimit = f
	}
	if v, ok := lookup(EnvRateBurst); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("%s: invalid burst %q", EnvRateBurst, v)
		}
		cfg.RateBurst = n
	}
	if v, ok := lookup(EnvMaxInputSize); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("%s: invalid size %q", EnvMaxInputSize, v)
		}
		cfg.MaxInputSize = n
	}
	if v, ok := lookup(EnvEncryptionKey); ok && v != "" {
		key, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvEncryptionKey, err)
		}
		if len(key) != encryptionKeySize {
			return cfg, fmt.Errorf("%s: key must be %d bytes, got %d", EnvEncryptionKey, encryptionKeySize, len(key))
		}
		cfg.EncryptionKey = key
	}

	return cfg, nil
}

// ResolveCallbackURL picks the request's callback URL, else the configured one,
// else the built-in default.
func ResolveCallbackURL(requested, configured string) string {
	switch {
	case requested != "":
		return requested
	case configured != "":
		return configured
	default:
		return domain.DefaultCallbackURL
	}
}
