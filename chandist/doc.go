// Package chandist computes downstream distance-to-channel over a D8
// or MFD flow-direction raster given a channel mask: component G of
// the routing engine.
package chandist
