// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// maxTickRate keeps time.Second/TickRate a usable ticker period.
const maxTickRate = 1000

var ginModes = map[string]bool{"debug": true, "release": true, "test": true}

// Config holds server settings.
type Config struct {
	Port          string
	TickRate      int
	MatchSeed     int64 // 0 seeds from the wall clock
	GinMode       string
	MaxSessions   int
	FrameMaxWidth int
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Port:          "8080",
		TickRate:      60,
		GinMode:       "release",
		MaxSessions:   64,
		FrameMaxWidth: 2400,
	}
}

// Load reads PORT, TICK_RATE, MATCH_SEED, GIN_MODE, MAX_SESSIONS and
// FRAME_MAX_WIDTH. Unset variables keep their defaults.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("GIN_MODE"); v != "" {
		if !ginModes[v] {
			return Config{}, fmt.Errorf("GIN_MODE: unknown mode %q (want debug, release or test)", v)
		}
		cfg.GinMode = v
	}

	var err error
	if cfg.TickRate, err = positiveInt(getenv, "TICK_RATE", cfg.TickRate); err != nil {
		return Config{}, err
	}
	if cfg.TickRate > maxTickRate {
		return Config{}, fmt.Errorf("TICK_RATE: must be at most %d, got %d", maxTickRate, cfg.TickRate)
	}
	if cfg.MaxSessions, err = positiveInt(getenv, "MAX_SESSIONS", cfg.MaxSessions); err != nil {
		return Config{}, err
	}
	if cfg.FrameMaxWidth, err = positiveInt(getenv, "FRAME_MAX_WIDTH", cfg.FrameMaxWidth); err != nil {
		return Config{}, err
	}
	if v := getenv("MATCH_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("MATCH_SEED: %w", err)
		}
		cfg.MatchSeed = seed
	}
	return cfg, nil
}

func positiveInt(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %d", key, n)
	}
	return n, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
