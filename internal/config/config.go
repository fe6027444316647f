// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
//   - New() builds a Config with defaults; Load(ctx) layers an optional
//     YAML file and environment variables on top.
//   - External errors are wrapped via this package's sentinel errors.
package config

// Source drivers accepted by the pipeline.
const (
	DriverCSV      = "csv"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config contains process configuration for one analysis run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// SourceDriver selects where transactions come from: csv, postgres, mysql.
	SourceDriver string `koanf:"source_driver"`

	// SourcePath is the dataset file for the csv driver.
	SourcePath string `koanf:"source_path"`

	// SourceDSN is the connection string for the postgres and mysql drivers.
	SourceDSN string `koanf:"source_dsn"`

	// SourceDateLayout parses CSV invoice timestamps (Go reference layout).
	SourceDateLayout string `koanf:"source_date_layout"`

	// RecencyBins, FrequencyBins, MonetaryBins set the quantile bin count
	// per metric.
	RecencyBins   int `koanf:"recency_bins"`
	FrequencyBins int `koanf:"frequency_bins"`
	MonetaryBins  int `koanf:"monetary_bins"`

	// ReferenceDate optionally fixes the RFM reference timestamp (RFC3339).
	// Empty means one day past the latest invoice.
	ReferenceDate string `koanf:"reference_date"`

	// ChurnThresholdDays is the inactivity window for the churn flag.
	ChurnThresholdDays int `koanf:"churn_threshold_days"`

	// CLVHorizonMonths and CLVDiscountRate parameterize the CLV baseline.
	CLVHorizonMonths int     `koanf:"clv_horizon_months"`
	CLVDiscountRate  float64 `koanf:"clv_discount_rate"`

	// TopN bounds the country and product rankings.
	TopN int `koanf:"top_n"`

	// OutputDir receives the exported report files.
	OutputDir string `koanf:"output_dir"`

	// Progress toggles the CLI progress bar while loading.
	Progress bool `koanf:"progress"`

	// Serve keeps the process up after the run and serves the results.
	Serve bool `koanf:"serve"`

	// Addr configures the HTTP listen address for serve mode.
	Addr string `koanf:"addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		SourceDriver:       DriverCSV,
		SourcePath:         "data/online_retail.csv",
		SourceDateLayout:   "2006-01-02 15:04:05",
		RecencyBins:        5,
		FrequencyBins:      5,
		MonetaryBins:       5,
		ChurnThresholdDays: 90,
		CLVHorizonMonths:   12,
		CLVDiscountRate:    0.01,
		TopN:               10,
		OutputDir:          "reports",
		Progress:           true,
		Addr:               ":8085",
	}
}
