package compat

import (
	"context"
	"errors"
	"log/slog"
)

// DefaultCacheSize is the default number of memoized compatibility verdicts.
const DefaultCacheSize = 4096

// Option configures a Provider or Table.
type Option func(*config) error

type config struct {
	cacheSize int
	metrics   *Metrics

	// logger is the structured logger for diagnostics.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithCacheSize sets how many verdicts the Provider memoizes. Zero disables
// the cache.
func WithCacheSize(n int) Option {
	return func(c *config) error {
		c.cacheSize = n
		return nil
	}
}

// WithMetrics records cache and lookup counters.
func WithMetrics(m *Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithLogger sets a structured logger for diagnostics.
// If not set, logging is disabled (silent mode).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

func (c *config) validate() error {
	if c.cacheSize < 0 {
		return errors.New("cache size must not be negative")
	}
	return nil
}

func (c *config) log() *slog.Logger {
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
