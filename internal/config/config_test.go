package config

import (
	"errors"
	"strconv"
	"testing"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(env(map[string]string{
		"PORT":            "9000",
		"TICK_RATE":       "30",
		"MATCH_SEED":      "-7",
		"GIN_MODE":        "debug",
		"MAX_SESSIONS":    "2",
		"FRAME_MAX_WIDTH": "800",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Config{Port: "9000", TickRate: 30, MatchSeed: -7, GinMode: "debug", MaxSessions: 2, FrameMaxWidth: 800}
	if cfg != want {
		t.Errorf("Expected %+v, got %+v", want, cfg)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	tests := []struct {
		key, value string
		parseErr   bool
	}{
		{"TICK_RATE", "fast", true},
		{"TICK_RATE", "0", false},
		{"MAX_SESSIONS", "-1", false},
		{"FRAME_MAX_WIDTH", "1e3", true},
		{"MATCH_SEED", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			_, err := load(env(map[string]string{tt.key: tt.value}))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if got := errors.Is(err, strconv.ErrSyntax); got != tt.parseErr {
				t.Errorf("errors.Is(err, ErrSyntax) = %v, want %v (%v)", got, tt.parseErr, err)
			}
		})
	}
}

func TestLoadRejectsBadSettings(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"GIN_MODE", "prod"},
		{"GIN_MODE", "Release"},
		{"TICK_RATE", "1001"},
		{"TICK_RATE", "2000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			if _, err := load(env(map[string]string{tt.key: tt.value})); err == nil {
				t.Fatal("Expected an error")
			}
		})
	}

	for _, mode := range []string{"debug", "release", "test"} {
		cfg, err := load(env(map[string]string{"GIN_MODE": mode, "TICK_RATE": "1000"}))
		if err != nil {
			t.Fatalf("GIN_MODE=%s: unexpected error: %v", mode, err)
		}
		if cfg.GinMode != mode || cfg.TickRate != 1000 {
			t.Errorf("unexpected config %+v", cfg)
		}
	}
}
