package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr string
	BaseURL    string

	// BookingURL points at a remote booking API. Empty means the in-memory mock.
	BookingURL     string
	BookingLatency time.Duration

	LogLevel  string
	LogFormat string

	// cart cookie
	CookieHashKey  []byte
	CookieBlockKey []byte
}

func FromEnv() (Config, error) {
	cfg := Config{
		ListenAddr: getenv("LISTEN_ADDR", ":8080"),
		BaseURL:    getenv("BASE_URL", "http://localhost:8080"),
		BookingURL: strings.TrimSpace(os.Getenv("BOOKING_URL")),
		LogLevel:   getenv("LOG_LEVEL", "info"),
		LogFormat:  getenv("LOG_FORMAT", "text"),
	}

	latencyMS, err := strconv.Atoi(getenv("BOOKING_LATENCY_MS", "100"))
	if err != nil || latencyMS < 0 {
		return Config{}, fmt.Errorf("invalid BOOKING_LATENCY_MS")
	}
	cfg.BookingLatency = time.Duration(latencyMS) * time.Millisecond

	if v := strings.TrimSpace(os.Getenv("COOKIE_HASH_KEY")); v != "" {
		if cfg.CookieHashKey, err = decodeB64(v); err != nil {
			return Config{}, fmt.Errorf("COOKIE_HASH_KEY: %w", err)
		}
	}
	if v := strings.TrimSpace(os.Getenv("COOKIE_BLOCK_KEY")); v != "" {
		if cfg.CookieBlockKey, err = decodeB64(v); err != nil {
			return Config{}, fmt.Errorf("COOKIE_BLOCK_KEY: %w", err)
		}
	}
	return cfg, nil
}

// RequireCookieKeys checks the keys the HTTP server needs for the cart cookie.
func (c Config) RequireCookieKeys() error {
	if len(c.CookieHashKey) == 0 || len(c.CookieBlockKey) == 0 {
		return fmt.Errorf("COOKIE_HASH_KEY and COOKIE_BLOCK_KEY are required (32 and 16/24/32 bytes base64)")
	}
	switch len(c.CookieBlockKey) {
	case 16, 24, 32:
	default:
		return fmt.Errorf("COOKIE_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", len(c.CookieBlockKey))
	}
	return nil
}

func decodeB64(s string) ([]byte, error) {
	if b, err := os.ReadFile(s); err == nil {
		// allow pointing to a file path for secret mounts
		s = strings.TrimSpace(string(b))
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
