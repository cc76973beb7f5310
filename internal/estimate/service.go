package estimate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"crawlreceipt/internal/estimate/metrics"
	"crawlreceipt/internal/estimate/providers"
	"crawlreceipt/internal/platform/config"
	"crawlreceipt/internal/platform/logger"
	"crawlreceipt/pkg/domain"
)

const tracerName = "crawlreceipt/internal/estimate"

// Config holds the calibration the estimator needs. It is copied on New and
// never mutated afterwards.
type Config struct {
	MinPages        int
	MaxPages        int
	BlockMultiplier int
	Timeout         time.Duration
	Floors          map[domain.Key]int
}

// ConfigFromCalibration extracts the estimator settings from a loaded calibration.
func ConfigFromCalibration(cal *config.Calibration) Config {
	floors := make(map[domain.Key]int, len(cal.Floors))
	for name, pages := range cal.Floors {
		floors[domain.Key(name)] = pages
	}
	return Config{
		MinPages:        cal.Pages.Min,
		MaxPages:        cal.Pages.Max,
		BlockMultiplier: cal.Index.BlockMultiplier,
		Timeout:         cal.Index.Timeout,
		Floors:          floors,
	}
}

func (c Config) validate() error {
	var errs []error
	if c.MinPages < 1 {
		errs = append(errs, fmt.Errorf("min pages must be positive, got %d", c.MinPages))
	}
	if c.MaxPages < c.MinPages {
		errs = append(errs, fmt.Errorf("max pages %d below min pages %d", c.MaxPages, c.MinPages))
	}
	if c.BlockMultiplier < 1 {
		errs = append(errs, fmt.Errorf("block multiplier must be positive, got %d", c.BlockMultiplier))
	}
	if c.Timeout <= 0 {
		errs = append(errs, errors.New("fan-out timeout must be positive"))
	}
	for key, pages := range c.Floors {
		if pages < 0 {
			errs = append(errs, fmt.Errorf("floor for %s is negative", key))
		}
		if pages > c.MaxPages {
			errs = append(errs, fmt.Errorf("floor for %s %d above max pages %d", key, pages, c.MaxPages))
		}
	}
	return errors.Join(errs...)
}

// Service estimates how many pages of a domain AI crawlers have seen.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	providers []providers.Provider
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New builds an estimator over the given index providers, queried in order.
// An empty provider list is allowed: every estimate then comes from floors or
// the synthetic fallback.
func New(provs []providers.Provider, cfg Config, opts ...Option) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid estimator config: %w", err)
	}
	for i, p := range provs {
		if p == nil {
			return nil, fmt.Errorf("invalid estimator config: provider %d is nil", i)
		}
	}

	floors := make(map[domain.Key]int, len(cfg.Floors))
	for k, v := range cfg.Floors {
		floors[k] = v
	}
	cfg.Floors = floors

	s := &Service{
		providers: append([]providers.Provider(nil), provs...),
		cfg:       cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Discard()
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s, nil
}

// Estimate returns the page count for key. It never fails: index failures
// count as no data, and an unexpected fault falls back to the synthetic
// estimate. It returns within the fan-out timeout.
func (s *Service) Estimate(ctx context.Context, key domain.Key) (out Outcome) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "estimate.Estimate",
		trace.WithAttributes(attribute.String("domain", key.String())))

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("estimate panic: %v", r)
			s.logger.ErrorContext(ctx, "estimate failed, using synthetic fallback",
				"domain", key.String(),
				"error", err,
			)
			span.RecordError(err)
			span.SetStatus(codes.Error, "estimate fault")
			out = s.synthetic(key, BasisFault)
		}

		span.SetAttributes(
			attribute.Int("pages", out.PageCount),
			attribute.String("provenance", string(out.Provenance)),
			attribute.String("basis", string(out.Basis)),
		)
		span.End()

		s.metrics.IncrementOutcome(string(out.Provenance), string(out.Basis))
		s.metrics.ObserveEstimateLatency(time.Since(start))
		s.logger.DebugContext(ctx, "estimate complete",
			"domain", key.String(),
			"pages", out.PageCount,
			"provenance", out.Provenance,
			"basis", out.Basis,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	blocks := s.maxBlocks(ctx, key)
	return s.decide(key, blocks)
}

// decide applies the floor rule to the best block count.
func (s *Service) decide(key domain.Key, blocks int) Outcome {
	measured := s.pagesFromBlocks(blocks)
	floor := s.cfg.Floors[key]

	switch {
	case measured > 0 && measured >= floor:
		return Outcome{PageCount: measured, Provenance: ProvenanceMeasured, Basis: BasisMeasured}
	case floor > 0:
		return Outcome{
			PageCount:  clamp(floor, s.cfg.MinPages, s.cfg.MaxPages),
			Provenance: ProvenanceEstimated,
			Basis:      BasisFloor,
		}
	default:
		return s.synthetic(key, BasisSynthetic)
	}
}

// pagesFromBlocks converts blocks to a clamped page count. Zero blocks is no
// measurement and stays zero.
func (s *Service) pagesFromBlocks(blocks int) int {
	if blocks <= 0 {
		return 0
	}
	if blocks > math.MaxInt/s.cfg.BlockMultiplier {
		return s.cfg.MaxPages
	}
	return clamp(blocks*s.cfg.BlockMultiplier, s.cfg.MinPages, s.cfg.MaxPages)
}

func (s *Service) synthetic(key domain.Key, basis Basis) Outcome {
	return Outcome{
		PageCount:  SyntheticPages(key.String(), s.cfg.MinPages, s.cfg.MaxPages),
		Provenance: ProvenanceEstimated,
		Basis:      basis,
	}
}
