package progress

import (
	"log/slog"
	"time"
)

const defaultInterval = 5 * time.Second

type config struct {
	interval time.Duration
	logger   *slog.Logger
	label    string
}

// Option configures a Reporter.
type Option func(*config)

// WithInterval sets the minimum spacing between two emitted log lines.
// Calls to Report between two emissions are dropped and produce no log
// output.
func WithInterval(d time.Duration) Option {
	return func(c *config) { c.interval = d }
}

// WithLogger sets the slog.Logger a Reporter writes through. The
// default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithLabel attaches a fixed "op" attribute to every emitted line,
// identifying which tile-scan loop is reporting.
func WithLabel(label string) Option {
	return func(c *config) { c.label = label }
}

func resolveOptions(opts []Option) config {
	cfg := config{
		interval: defaultInterval,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
