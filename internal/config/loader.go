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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CANDIDESK_CONFIG is set
//  3. env (prefix CANDIDESK_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CANDIDESK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: CANDIDESK_ADDR, CANDIDESK_SNAPSHOT_PATH, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider("CANDIDESK_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "candidesk_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SnapshotPath == "":
		return fmt.Errorf("%w: snapshot_path must not be empty", ErrInvalidConfig)
	case c.BusinessOpenHour < 0 || c.BusinessOpenHour > 23:
		return fmt.Errorf("%w: business_open_hour out of range", ErrInvalidConfig)
	case c.BusinessCloseHour < 1 || c.BusinessCloseHour > 24:
		return fmt.Errorf("%w: business_close_hour out of range", ErrInvalidConfig)
	case c.BusinessCloseHour <= c.BusinessOpenHour:
		return fmt.Errorf("%w: business hours window is empty", ErrInvalidConfig)
	}
	return nil
}
