package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_CAPACITY", "RATE_LIMIT_REFILL_TOKENS",
		"RATE_LIMIT_REFILL_INTERVAL", "RATE_LIMIT_TTL", "RATE_LIMIT_KEY_STRATEGY",
		"RATE_LIMIT_PREFIX", "RATE_LIMIT_DEBUG",
	} {
		t.Setenv(k, "")
	}

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Error("limiter should be enabled by default")
	}
	if cfg.Capacity != 60 {
		t.Errorf("capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Errorf("refill interval = %v, want 1s", cfg.RefillInterval)
	}
	if cfg.KeyStrategy != "ip_account_route" {
		t.Errorf("key strategy = %q, want ip_account_route", cfg.KeyStrategy)
	}
	if cfg.Prefix != "rl" {
		t.Errorf("prefix = %q, want rl", cfg.Prefix)
	}
}

func TestLoadRateLimitConfig_Floors(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Errorf("capacity = %d, want floor 1", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 {
		t.Errorf("refill tokens = %d, want floor 1", cfg.RefillTokens)
	}
	if want := 5 * cfg.RefillInterval; cfg.TTL != want {
		t.Errorf("ttl = %v, want raised to %v", cfg.TTL, want)
	}
}

func TestEnvBool(t *testing.T) {
	cases := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"1", false, true},
		{"true", false, true},
		{"YES", false, true},
		{"0", true, false},
		{"off", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		t.Setenv("RL_TEST_BOOL", tc.raw)
		if got := envBool("RL_TEST_BOOL", tc.def); got != tc.want {
			t.Errorf("envBool(%q, %v) = %v, want %v", tc.raw, tc.def, got, tc.want)
		}
	}
}
