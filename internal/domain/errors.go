package domain

import "errors"

// Intersections over an empty attractor or instance list are undefined,
// which is distinct from an intersection that happens to be empty. Callers
// get these sentinels instead of a zero-value result.
var (
	ErrNoAttractors = errors.New("instance has no attractors")
	ErrNoInstances  = errors.New("collection has no instances")
)
