package watershed

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
)

// NoWatershed is the scratch-raster sentinel meaning "not yet claimed
// by any watershed's backward BFS".
const NoWatershed = -1.0

// Options configures Delineate.
type Options struct {
	scratchPrefix string
	ctx           context.Context
	reporter      *progress.Reporter
}

// Option mutates Options before Delineate runs.
type Option func(*Options)

// WithScratchPrefix sets the path prefix used when creating the ws_id
// and visited-mask scratch rasters via the Dataset collaborator.
func WithScratchPrefix(prefix string) Option {
	return func(o *Options) { o.scratchPrefix = prefix }
}

// WithContext sets the context polled for cancellation between
// per-outflow backward BFS runs. The default is
// context.Background.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.ctx = ctx }
}

// WithProgress attaches a Reporter that reports per-outflow progress.
func WithProgress(r *progress.Reporter) Option {
	return func(o *Options) { o.reporter = r }
}

func resolveOptions(opts []Option) Options {
	o := Options{scratchPrefix: "flowroute_watershed", ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
