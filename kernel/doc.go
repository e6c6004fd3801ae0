// Package kernel generates distance-decay weight-kernel rasters
// centered on a pixel: dichotomous, density, exponential, linear, and
// gaussian. Each kernel raster is directly usable as the weight raster
// flowaccum and chandist accept in place of geometric step cost.
package kernel
