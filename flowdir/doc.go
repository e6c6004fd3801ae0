// Package flowdir computes D8 and multiple-flow-direction (MFD) flow
// direction over a filled DEM: component E of the routing engine.
// Both variants share the same three-phase structure (local slope,
// plateau discovery, shortest-path direction assignment) and the same
// deterministic direction-order tie-break.
package flowdir
