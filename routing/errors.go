package routing

import "errors"

// ErrInvalidArgument indicates a (path, band) pair failed validation:
// an empty path or a band index below 1.
var ErrInvalidArgument = errors.New("routing: invalid argument")
