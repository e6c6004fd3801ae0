// Package progress is a time-throttled wrapper around log/slog, used by
// the tile-scan loops in flowaccum/chandist/watershed/pitfill to report
// fractional completion without flooding the log on every pixel.
package progress
