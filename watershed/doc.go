// Package watershed delineates watershed polygons from a set of
// outflow points and a D8 flow-direction raster: component H of the
// routing engine. Watersheds that nest (one outflow downstream of
// another on the same channel) are not merged: a watershed whose
// backward BFS reaches another watershed's pixels records that one's
// ws_id in its upstream_fragments, so callers can union lazily.
package watershed
