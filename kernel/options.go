package kernel

// NoData is the nodata sentinel written to every generated kernel
// raster, matching numpy.finfo(float32).min rather than a round value,
// so it can never collide with a legitimate kernel weight.
const NoData = -3.4028234663852886e+38

// Options configures kernel generation.
type Options struct {
	scratchPrefix string
}

// Option mutates Options before a kernel raster is built.
type Option func(*Options)

// WithScratchPrefix sets the path prefix used when creating the
// kernel raster via the Dataset collaborator.
func WithScratchPrefix(prefix string) Option {
	return func(o *Options) { o.scratchPrefix = prefix }
}

func resolveOptions(opts []Option) Options {
	o := Options{scratchPrefix: "flowroute_kernel"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
