package chandist

import (
	"context"

	"github.com/catchbasin/flowroute/internal/progress"
	"github.com/catchbasin/flowroute/neighbor"
	"github.com/catchbasin/flowroute/rasterio"
)

// NoDataDistance is the nodata sentinel for a distance-to-channel
// raster. -1 is chosen to match the flow-accumulation raster's
// sentinel (both are non-negative quantities, so -1 is unambiguous).
const NoDataDistance = -1.0

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
// distance raster via the Dataset collaborator.
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
	o := Options{scratchPrefix: "flowroute_chandist", ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// costAt returns the per-step traversal cost charged when arriving at
// pixel nb via direction i: the weight raster's value at nb if
// provided, else the geometric step cost (1 cardinal, √2 diagonal).
func costAt(weight *rasterio.ManagedRaster, nb neighbor.Coord, i int) (float64, error) {
	if weight == nil {
		return neighbor.StepCost(i), nil
	}
	return weight.Get(int(nb.X), int(nb.Y))
}
