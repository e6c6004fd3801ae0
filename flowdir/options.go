package flowdir

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
)

// Options configures D8 and MFD. The functional-options shape follows
// builder.BuilderOption's idiom.
type Options struct {
	scratchPrefix string
	ctx           context.Context
	reporter      *progress.Reporter
}

// Option mutates Options before D8 or MFD runs.
type Option func(*Options)

// WithScratchPrefix sets the path prefix used when creating the
// direction and scratch masks rasters via the Dataset collaborator.
func WithScratchPrefix(prefix string) Option {
	return func(o *Options) { o.scratchPrefix = prefix }
}

// WithContext sets the context polled for cancellation at the outer
// tile-scan loop. The default is context.Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.ctx = ctx }
}

// WithProgress attaches a Reporter the outer tile-scan loop reports
// row-scan progress through.
func WithProgress(r *progress.Reporter) Option {
	return func(o *Options) { o.reporter = r }
}

func resolveOptions(opts []Option) Options {
	o := Options{scratchPrefix: "flowroute_flowdir", ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
