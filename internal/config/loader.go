package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CRM_CONFIG is set
//  3. env (prefix CRM_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CRM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CRM_SOURCE_DRIVER, CRM_RECENCY_BINS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("CRM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "crm_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.SourceDriver {
	case DriverCSV:
		if c.SourcePath == "" {
			return fmt.Errorf("%w: source_path must not be empty for the csv driver", ErrInvalidConfig)
		}
	case DriverPostgres, DriverMySQL:
		if c.SourceDSN == "" {
			return fmt.Errorf("%w: source_dsn must not be empty for the %s driver", ErrInvalidConfig, c.SourceDriver)
		}
	default:
		return fmt.Errorf("%w: unknown source_driver %q", ErrInvalidConfig, c.SourceDriver)
	}

	if c.RecencyBins < 1 || c.FrequencyBins < 1 || c.MonetaryBins < 1 {
		return fmt.Errorf("%w: bin counts must be at least 1", ErrInvalidConfig)
	}
	if c.ChurnThresholdDays < 1 {
		return fmt.Errorf("%w: churn_threshold_days must be at least 1", ErrInvalidConfig)
	}
	if c.CLVHorizonMonths < 1 {
		return fmt.Errorf("%w: clv_horizon_months must be at least 1", ErrInvalidConfig)
	}
	if c.CLVDiscountRate < 0 {
		return fmt.Errorf("%w: clv_discount_rate must not be negative", ErrInvalidConfig)
	}
	if c.ReferenceDate != "" {
		if _, err := time.Parse(time.RFC3339, c.ReferenceDate); err != nil {
			return fmt.Errorf("%w: reference_date must be RFC3339: %w", ErrInvalidConfig, err)
		}
	}
	if c.Serve && c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty in serve mode", ErrInvalidConfig)
	}
	return nil
}

// Reference returns the parsed reference date, or the zero time when the
// config leaves it to the dataset.
func (c *Config) Reference() time.Time {
	if c.ReferenceDate == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, c.ReferenceDate)
	if err != nil {
		return time.Time{}
	}
	return t
}
