package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if PROGNO_CONFIG is set
//  3. env (prefix PROGNO_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("PROGNO_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: PROGNO_TOKEN, PROGNO_ENDPOINT_URL, ...
	// Map env keys like PROGNO_TIMEOUT_SECONDS -> timeout_seconds (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("PROGNO_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "progno_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic shape checks; contractual validation lives in Validate.
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeout_seconds must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
