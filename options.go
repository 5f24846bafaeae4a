package gotfm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/albertocavalcante/go-tfm/compat"
	"github.com/albertocavalcante/go-tfm/registry"
)

// Option configures an Engine.
type Option func(*engineConfig) error

// engineConfig holds all engine configuration.
type engineConfig struct {
	registry  *registry.Registry
	mappings  []*registry.Mappings
	cacheSize int
	metrics   prometheus.Registerer

	// logger is the structured logger for diagnostics.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithRegistry uses a prebuilt framework name registry instead of the
// default tables. It cannot be combined with WithMappings.
func WithRegistry(r *registry.Registry) Option {
	return func(c *engineConfig) error {
		if r == nil {
			return fmt.Errorf("%w: nil registry", ErrInvalidOption)
		}
		c.registry = r
		return nil
	}
}

// WithMappings layers additional name tables over the defaults, e.g. ones
// loaded with registry.LoadMappings.
func WithMappings(m *registry.Mappings) Option {
	return func(c *engineConfig) error {
		if m == nil {
			return fmt.Errorf("%w: nil mappings", ErrInvalidOption)
		}
		c.mappings = append(c.mappings, m)
		return nil
	}
}

// WithCacheSize sets how many compatibility verdicts are memoized. Zero
// disables the cache.
func WithCacheSize(n int) Option {
	return func(c *engineConfig) error {
		c.cacheSize = n
		return nil
	}
}

// WithMetrics registers compatibility cache and lookup metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *engineConfig) error {
		if reg == nil {
			return fmt.Errorf("%w: nil metrics registerer", ErrInvalidOption)
		}
		c.metrics = reg
		return nil
	}
}

// WithLogger sets a structured logger for engine diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "tfm")
//	engine, err := gotfm.New(gotfm.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *engineConfig) validate() error {
	if c.registry != nil && len(c.mappings) > 0 {
		return fmt.Errorf("%w: WithRegistry and WithMappings are mutually exclusive", ErrInvalidOption)
	}
	if c.cacheSize < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOption, errors.New("cache size must not be negative"))
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *engineConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newEngineConfig applies opts over the defaults and validates the result.
func newEngineConfig(opts ...Option) (*engineConfig, error) {
	c := &engineConfig{cacheSize: compat.DefaultCacheSize}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}
