package rasterio

// Mode selects whether a ManagedRaster may mutate pixels.
type Mode int

const (
	ModeRead Mode = iota
	ModeReadWrite
)

// Option configures Open. The functional-options shape follows
// builder.BuilderOption's pattern: each Option mutates a private
// config, resolved once before the raster is opened.
type Option func(*openConfig)

type openConfig struct {
	cacheCapacity int
}

// WithCacheCapacity overrides tilecache's default 64-block capacity.
func WithCacheCapacity(n int) Option {
	return func(c *openConfig) { c.cacheCapacity = n }
}

func resolveOptions(opts []Option) openConfig {
	cfg := openConfig{cacheCapacity: 0} // 0 -> tilecache.DefaultCapacity
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
