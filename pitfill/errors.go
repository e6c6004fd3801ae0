package pitfill

import "errors"

// ErrUndrainedRaster indicates the priority-flood expansion exhausted
// its heap without ever finding a pour point: the region, and
// everything reachable uphill from it, has nowhere to drain. This
// fails loudly rather than silently leaving the DEM unchanged (see
// DESIGN.md Open Question 2).
var ErrUndrainedRaster = errors.New("pitfill: region has no pour point")
