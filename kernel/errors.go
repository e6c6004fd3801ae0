package kernel

import "errors"

// ErrBadKernelSize is returned when ds's dimensions do not match the
// odd, centered kernel footprint Size reports for the requested
// distance (2*ceil(maxDistance)+1 on each side).
var ErrBadKernelSize = errors.New("kernel: dataset dimensions do not match kernel footprint")
