// Package routing is the public entry surface of the routing engine:
// eight path-and-band operations (fill_pits, flow_dir_d8,
// flow_accumulation_d8, flow_dir_mfd, flow_accumulation_mfd,
// distance_to_channel_d8, distance_to_channel_mfd,
// delineate_watersheds), each a thin wrapper
// that opens its raster/vector arguments through an Opener, validates
// them, and dispatches into pitfill/flowdir/flowaccum/chandist/watershed.
package routing
