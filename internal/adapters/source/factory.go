package source

import (
	"fmt"

	"github.com/hzlparlak/Crm-Analytics/internal/config"
)

// FromConfig builds the source selected by the configured driver.
func FromConfig(cfg *config.Config) (Source, error) {
	switch cfg.SourceDriver {
	case config.DriverCSV:
		return NewCSVSource(cfg.SourcePath,
			WithDateLayout(cfg.SourceDateLayout),
			WithProgress(cfg.Progress),
		), nil
	case config.DriverPostgres:
		return NewPostgresSource(cfg.SourceDSN), nil
	case config.DriverMySQL:
		return NewMySQLSource(cfg.SourceDSN), nil
	default:
		return nil, fmt.Errorf("%w: unknown source driver %q", ErrOpenSource, cfg.SourceDriver)
	}
}
