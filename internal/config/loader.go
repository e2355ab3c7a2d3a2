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
//  2. file (YAML) if CS25_CONFIG is set
//  3. env (prefix CS25_)
func Load(_ context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CS25_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CS25_ADDR, CS25_BCRYPT_COST, ...
	// Map env keys like CS25_BCRYPT_COST -> bcrypt_cost (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CS25_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "cs25_")
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

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("%w: bcrypt_cost %d outside 4..31", ErrInvalidConfig, cfg.BcryptCost)
	}
	if cfg.HalfPoint <= 0 {
		return nil, fmt.Errorf("%w: half_point must be positive", ErrInvalidConfig)
	}
	if cfg.MaxImportRows < 1 {
		return nil, fmt.Errorf("%w: max_import_rows must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
