package main

import (
	"fmt"
	"strconv"
	"time"

	wamedia "github.com/mediavault/wamedia-go"
)

// Environment variables read by the CLI.
const (
	envTimeout    = "WAMEDIA_TIMEOUT"
	envRetries    = "WAMEDIA_RETRIES"
	envMaxSize    = "WAMEDIA_MAX_SIZE"
	envMediaHost  = "WAMEDIA_MEDIA_HOST"
	envCacheTTL   = "WAMEDIA_CACHE_TTL"
	envLogLevel   = "WAMEDIA_LOG_LEVEL"
	envLaxDigests = "WAMEDIA_LAX_DIGESTS"
)

// Settings is the CLI configuration resolved from the environment.
type Settings struct {
	Timeout    time.Duration
	Retries    int
	MaxSize    int64
	MediaHost  string
	CacheTTL   time.Duration
	LogLevel   string
	LaxDigests bool
}

// DefaultSettings returns the settings used when no variable is set.
func DefaultSettings() Settings {
	return Settings{
		Timeout:   wamedia.DefaultTimeout,
		Retries:   wamedia.DefaultRetries,
		MaxSize:   wamedia.DefaultMaxSize,
		MediaHost: wamedia.DefaultMediaHost,
		LogLevel:  "info",
	}
}

// loadSettings overlays environment values on DefaultSettings.
func loadSettings(getenv func(string) string) (Settings, error) {
	s := DefaultSettings()

	if value := getenv(envTimeout); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return s, fmt.Errorf("%s: invalid duration %q", envTimeout, value)
		}
		s.Timeout = d
	}
	if value := getenv(envRetries); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return s, fmt.Errorf("%s: invalid retry count %q", envRetries, value)
		}
		s.Retries = n
	}
	if value := getenv(envMaxSize); value != "" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return s, fmt.Errorf("%s: invalid size %q", envMaxSize, value)
		}
		s.MaxSize = n
	}
	if value := getenv(envMediaHost); value != "" {
		s.MediaHost = value
	}
	if value := getenv(envCacheTTL); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return s, fmt.Errorf("%s: invalid duration %q", envCacheTTL, value)
		}
		s.CacheTTL = d
	}
	if value := getenv(envLogLevel); value != "" {
		s.LogLevel = value
	}
	if value := getenv(envLaxDigests); value != "" {
		lax, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("%s: invalid boolean %q", envLaxDigests, value)
		}
		s.LaxDigests = lax
	}

	return s, nil
}

// clientOptions converts settings to client options.
func (s Settings) clientOptions() []wamedia.Option {
	return []wamedia.Option{
		wamedia.WithTimeout(s.Timeout),
		wamedia.WithRetries(s.Retries),
		wamedia.WithMaxSize(s.MaxSize),
		wamedia.WithMediaHost(s.MediaHost),
		wamedia.WithCacheTTL(s.CacheTTL),
		wamedia.WithStrictDigests(!s.LaxDigests),
	}
}
