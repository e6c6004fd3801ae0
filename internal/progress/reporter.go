package progress

import (
	"log/slog"
	"time"
)

// Reporter throttles progress log lines to at most one per interval,
// regardless of how often Report is called. It is not safe for
// concurrent use by multiple goroutines; each tile-scan loop owns its
// own Reporter.
type Reporter struct {
	cfg     config
	start   time.Time
	last    time.Time
	emitted bool
}

// New builds a Reporter. Elapsed time in every emitted line is measured
// from New. The first call to Report always emits, establishing the
// baseline the interval throttle measures from.
func New(opts ...Option) *Reporter {
	now := time.Now()
	return &Reporter{
		cfg:   resolveOptions(opts),
		start: now,
	}
}

// Report records done out of total units of work complete and emits a
// log line if at least cfg.interval has elapsed since the last one, or
// if this is the first call. done and total are pixel or block counts,
// not percentages; Report computes the fraction itself.
func (r *Reporter) Report(done, total int64) {
	now := time.Now()
	if r.emitted && now.Sub(r.last) < r.cfg.interval {
		return
	}
	r.last = now
	r.emitted = true

	frac := 0.0
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	r.cfg.logger.Info("progress",
		slog.String("op", r.cfg.label),
		slog.Int64("done", done),
		slog.Int64("total", total),
		slog.Float64("fraction", frac),
		slog.Duration("elapsed", now.Sub(r.start)),
	)
}

// Done emits a final 100% log line unconditionally, bypassing the
// interval throttle. Call it once after a tile-scan loop completes.
func (r *Reporter) Done(total int64) {
	now := time.Now()
	r.cfg.logger.Info("progress",
		slog.String("op", r.cfg.label),
		slog.Int64("done", total),
		slog.Int64("total", total),
		slog.Float64("fraction", 1.0),
		slog.Duration("elapsed", now.Sub(r.start)),
	)
}
