// Package service runs the analysis pipeline end to end: load, dedupe,
// clean, score, churn, CLV, EDA, export. It retains the latest document
// so the report API can serve it.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hzlparlak/Crm-Analytics/internal/adapters/report"
	"github.com/hzlparlak/Crm-Analytics/internal/adapters/source"
	"github.com/hzlparlak/Crm-Analytics/internal/config"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/churn"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/cleaning"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/clv"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/dedupe"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/eda"
	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
	"github.com/hzlparlak/Crm-Analytics/pkg/logger"
	"github.com/hzlparlak/Crm-Analytics/pkg/metrics"
)

// Service orchestrates one analysis run over a transaction source.
type Service struct {
	mu sync.RWMutex

	// Core components
	source    source.Source
	exporters []report.Exporter
	predictor clv.Predictor

	// Configuration
	recencyBins    int
	frequencyBins  int
	monetaryBins   int
	reference      time.Time
	churnThreshold int
	topN           int

	// State
	latest *report.Document

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets the transaction source.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithExporters sets the exporters that persist the run document.
func WithExporters(exporters ...report.Exporter) Option {
	return func(s *Service) {
		s.exporters = exporters
	}
}

// WithPredictor sets the lifetime value predictor.
func WithPredictor(p clv.Predictor) Option {
	return func(s *Service) {
		if p != nil {
			s.predictor = p
		}
	}
}

// WithBins sets the quantile bin counts for the three scores.
func WithBins(recency, frequency, monetary int) Option {
	return func(s *Service) {
		if recency > 0 {
			s.recencyBins = recency
		}
		if frequency > 0 {
			s.frequencyBins = frequency
		}
		if monetary > 0 {
			s.monetaryBins = monetary
		}
	}
}

// WithReference pins the recency reference time. The zero time defers to
// the dataset (one day after the latest invoice).
func WithReference(at time.Time) Option {
	return func(s *Service) {
		s.reference = at
	}
}

// WithChurnThreshold sets the inactivity threshold in days.
func WithChurnThreshold(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.churnThreshold = days
		}
	}
}

// WithTopN sets the length of the EDA rankings.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New constructs a Service with default configuration. A source must be
// provided before Run.
func New(opts ...Option) *Service {
	s := &Service{
		recencyBins:    rfm.DefaultBins,
		frequencyBins:  rfm.DefaultBins,
		monetaryBins:   rfm.DefaultBins,
		churnThreshold: churn.DefaultInactivityThreshold,
		topN:           eda.DefaultTopN,
		predictor:      clv.NewBaselinePredictor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// FromConfig wires a Service from the loaded configuration: the configured
// source driver, JSON and CSV exporters, and the baseline predictor.
func FromConfig(cfg *config.Config) (*Service, error) {
	src, err := source.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return New(
		WithSource(src),
		WithExporters(
			report.NewJSONExporter(cfg.OutputDir),
			report.NewCSVExporter(cfg.OutputDir),
		),
		WithPredictor(clv.NewBaselinePredictor(
			clv.WithHorizonMonths(cfg.CLVHorizonMonths),
			clv.WithDiscountRate(cfg.CLVDiscountRate),
		)),
		WithBins(cfg.RecencyBins, cfg.FrequencyBins, cfg.MonetaryBins),
		WithReference(cfg.Reference()),
		WithChurnThreshold(cfg.ChurnThresholdDays),
		WithTopN(cfg.TopN),
	), nil
}

// Run executes the full pipeline once and returns the resulting document.
// The document is retained for Latest.
func (s *Service) Run(ctx context.Context) (*report.Document, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	runID := uuid.NewString()
	runStart := time.Now()
	s.logger.Info(ctx, "starting analysis run", logger.String("runID", runID))

	start := time.Now()
	raw, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	metrics.RecordTransactionsLoaded(len(raw))
	metrics.ObserveStageDuration("load", time.Since(start))
	s.logger.Info(ctx, "transactions loaded", logger.Int("lines", len(raw)))

	start = time.Now()
	unique, duplicates := dedupe.Lines(raw)
	metrics.RecordTransactionsDiscarded("duplicate", duplicates)

	cleaned, cleanReport := cleaning.Clean(unique)
	metrics.RecordTransactionsDiscarded("missing_customer", cleanReport.MissingCustomer)
	metrics.RecordTransactionsDiscarded("non_positive_quantity", cleanReport.NonPositiveQty)
	metrics.RecordTransactionsDiscarded("non_positive_price", cleanReport.NonPositivePrice)
	metrics.RecordTransactionsDiscarded("cancellation", cleanReport.Cancellations)
	metrics.ObserveStageDuration("clean", time.Since(start))
	s.logger.Info(ctx, "transactions cleaned",
		logger.Int("kept", cleanReport.Kept),
		logger.Int("duplicates", duplicates),
		logger.Int("dropped", cleanReport.Input-cleanReport.Kept),
	)

	start = time.Now()
	reference := s.reference
	if reference.IsZero() {
		reference = rfm.DefaultReference(cleaned)
	}
	customers := rfm.Compute(cleaned, reference)
	engine := rfm.NewEngine(
		rfm.WithRecencyBins(s.recencyBins),
		rfm.WithFrequencyBins(s.frequencyBins),
		rfm.WithMonetaryBins(s.monetaryBins),
	)
	scored := engine.Score(customers)
	metrics.RecordCustomersScored(len(scored))
	metrics.ObserveStageDuration("score", time.Since(start))

	segments := report.SegmentCounts(scored)
	for seg, n := range segments {
		metrics.SetSegmentCustomers(string(seg), n)
	}
	s.logger.Info(ctx, "customers scored",
		logger.Int("customers", len(scored)),
		logger.String("reference", reference.Format(time.RFC3339)),
	)

	start = time.Now()
	churnSummary := churn.Flag(cleaned, s.churnThreshold)
	features := churn.BuildFeatures(cleaned, s.churnThreshold)
	metrics.SetChurnRate(churnSummary.Rate)
	metrics.ObserveStageDuration("churn", time.Since(start))
	s.logger.Info(ctx, "churn flagged",
		logger.Int("churned", churnSummary.Churned),
		logger.Int("active", churnSummary.Active),
		logger.Float64("rate", churnSummary.Rate),
	)

	start = time.Now()
	summaries := clv.Prepare(cleaned)
	predictions := s.predictor.Predict(summaries)
	clvBySegment := clv.BySegment(predictions, scored)
	metrics.ObserveStageDuration("clv", time.Since(start))

	start = time.Now()
	overview := eda.Summarize(cleaned)
	metrics.SetDatasetCustomers(overview.Customers)
	metrics.SetDatasetRevenue(overview.Revenue)
	edaSection := report.EDASection{
		Overview:     overview,
		Daily:        eda.DailyCounts(cleaned),
		Weekdays:     eda.WeekdayCounts(cleaned),
		Hours:        eda.HourlyCounts(cleaned),
		TopCountries: eda.TopCountries(cleaned, s.topN),
		TopProducts:  eda.TopProducts(cleaned, s.topN),
	}
	metrics.ObserveStageDuration("eda", time.Since(start))

	doc := &report.Document{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Reference:   reference,
		Cleaning:    cleanReport,
		Duplicates:  duplicates,
		Customers:   scored,
		Segments:    segments,
		Churn:       churnSummary,
		Features:    features,
		CLV:         clvBySegment,
		EDA:         edaSection,
	}

	start = time.Now()
	for _, exporter := range s.exporters {
		paths, err := exporter.Export(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("export document: %w", err)
		}
		for _, path := range paths {
			s.logger.Info(ctx, "report written", logger.String("path", path))
		}
	}
	metrics.ObserveStageDuration("export", time.Since(start))

	s.mu.Lock()
	s.latest = doc
	s.mu.Unlock()

	metrics.RecordRun()
	s.logger.Info(ctx, "analysis run finished",
		logger.String("runID", runID),
		logger.Duration("took", time.Since(runStart)),
	)
	return doc, nil
}

// Latest returns the document of the most recent completed run.
func (s *Service) Latest(ctx context.Context) (*report.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return nil, report.ErrNoDocument
	}
	return s.latest, nil
}
