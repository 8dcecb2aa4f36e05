package config

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if QUESTLOG_CONFIG is set
//  3. env (prefix QUESTLOG_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("QUESTLOG_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// Environment variables: QUESTLOG_ADDR, QUESTLOG_DB_PATH, ...
	// Map env keys like QUESTLOG_ACTION_LOG_SIZE -> action_log_size (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("QUESTLOG_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "questlog_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	if cfg.ActionLogSize < 1 {
		return nil, errors.New("action_log_size must be positive")
	}
	if cfg.SessionHistorySize < 1 {
		return nil, errors.New("session_history_size must be positive")
	}
	return &cfg, nil
}
