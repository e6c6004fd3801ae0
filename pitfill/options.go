package pitfill

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
)

// Options configures Fill. The functional-options shape follows
// builder.BuilderOption's idiom, carried into every algorithm
// package.
type Options struct {
	scratchPrefix string
	ctx           context.Context
	reporter      *progress.Reporter
}

// Option mutates Options before Fill runs.
type Option func(*Options)

// WithScratchPrefix sets the path prefix used when creating the
// filled-DEM and scratch mask rasters via the Dataset collaborator.
func WithScratchPrefix(prefix string) Option {
	return func(o *Options) { o.scratchPrefix = prefix }
}

// WithContext sets the context polled for cancellation at the outer
// tile-scan loop. The default is context.Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.ctx = ctx }
}

// WithProgress attaches a Reporter the outer tile-scan loop reports
// row-scan progress through. Progress reporting is skipped if none is
// set.
func WithProgress(r *progress.Reporter) Option {
	return func(o *Options) { o.reporter = r }
}

func resolveOptions(opts []Option) Options {
	o := Options{scratchPrefix: "flowroute_pitfill", ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
