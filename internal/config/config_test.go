package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LISTEN_ADDR", "BASE_URL", "BOOKING_URL", "BOOKING_LATENCY_MS", "LOG_LEVEL", "LOG_FORMAT", "COOKIE_HASH_KEY", "COOKIE_BLOCK_KEY"} {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.BookingURL != "" || cfg.BookingLatency != 100*time.Millisecond {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Fatalf("unexpected log defaults %+v", cfg)
	}
	if err := cfg.RequireCookieKeys(); err == nil {
		t.Fatal("expected missing cookie keys to be reported")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	hash := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("h", 32)))
	block := base64.RawStdEncoding.EncodeToString([]byte(strings.Repeat("b", 16)))
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("BOOKING_URL", "http://booking.internal")
	t.Setenv("BOOKING_LATENCY_MS", "0")
	t.Setenv("COOKIE_HASH_KEY", hash)
	t.Setenv("COOKIE_BLOCK_KEY", block)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9090" || cfg.BookingURL != "http://booking.internal" || cfg.BookingLatency != 0 {
		t.Fatalf("overrides not applied %+v", cfg)
	}
	if len(cfg.CookieHashKey) != 32 || len(cfg.CookieBlockKey) != 16 {
		t.Fatalf("unexpected key sizes %d/%d", len(cfg.CookieHashKey), len(cfg.CookieBlockKey))
	}
	if err := cfg.RequireCookieKeys(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromEnvKeyFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "hash")
	enc := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))
	if err := os.WriteFile(path, []byte(enc+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COOKIE_HASH_KEY", path)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(cfg.CookieHashKey) != strings.Repeat("k", 32) {
		t.Fatalf("key file not read, got %q", cfg.CookieHashKey)
	}
}

func TestFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "negativeLatency", key: "BOOKING_LATENCY_MS", val: "-1"},
		{name: "nonNumericLatency", key: "BOOKING_LATENCY_MS", val: "fast"},
		{name: "badHashKey", key: "COOKIE_HASH_KEY", val: "%%%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := FromEnv(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRequireCookieKeysBlockSize(t *testing.T) {
	cfg := Config{CookieHashKey: make([]byte, 32), CookieBlockKey: make([]byte, 20)}
	if err := cfg.RequireCookieKeys(); err == nil {
		t.Fatal("expected invalid block key size to be rejected")
	}
}
