package goplugdep

import (
	"context"
	"errors"
	"log/slog"
)

// DefaultMaxDepth is the default dependency depth limit. It is the only
// protection against runaway expansion before cycle detection runs.
const DefaultMaxDepth = 10

// Option configures a Resolver.
type Option func(*resolverConfig) error

// resolverConfig holds all resolver configuration.
type resolverConfig struct {
	maxDepth    int
	coreVersion string
	installFunc InstallFunc
	retainGraph bool

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	//
	// Design decision: we use *slog.Logger (Go 1.21+ stdlib) rather than a
	// custom interface because slog provides frontend/backend separation.
	// Users can plug in any backend (zap, zerolog, etc.) via slog handlers.
	logger *slog.Logger
}

// WithMaxDepth sets the dependency depth limit. Resolution fails with a
// DependencyError once a dependency chain grows past this depth.
func WithMaxDepth(depth int) Option {
	return func(c *resolverConfig) error {
		c.maxDepth = depth
		return nil
	}
}

// WithCoreVersion sets the host/core version that plugin CoreVersion
// constraints are checked against in CheckCompatibility.
// If not set, CoreVersion constraints are skipped.
func WithCoreVersion(version string) Option {
	return func(c *resolverConfig) error {
		c.coreVersion = version
		return nil
	}
}

// WithInstallFunc sets the side effect invoked by InstallDependencies for
// each plugin not already installed at its chosen version.
// If not set, planning works normally but no side effect runs.
func WithInstallFunc(fn InstallFunc) Option {
	return func(c *resolverConfig) error {
		c.installFunc = fn
		return nil
	}
}

// WithGraphRetention keeps the dependency graph across Resolve calls
// instead of resetting it per call. Repeated resolutions then accumulate
// into one merged graph, which can be useful for inspection but makes the
// outcome depend on call history.
func WithGraphRetention() Option {
	return func(c *resolverConfig) error {
		c.retainGraph = true
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	resolver, _ := NewResolver(reg, WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *resolverConfig) validate() error {
	if c.maxDepth < 1 {
		return errors.New("max depth must be at least 1")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
// Internal code can then log without nil checks; the library stays silent
// unless the caller opts in via WithLogger.
func (c *resolverConfig) log() *slog.Logger {
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

// newResolverConfig applies options over the defaults and validates.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{maxDepth: DefaultMaxDepth}

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
