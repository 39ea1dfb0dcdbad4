package types

import "errors"

// Error kinds returned by the catalog service. The HTTP layer maps these to
// status codes; anything not listed here is treated as a server error.
var (
	// ErrNotFound reports a missing entity (detail lookups, document requests).
	ErrNotFound = errors.New("not found")

	// ErrInvalidFilter reports a range-bucket selection that does not resolve
	// to a configured bucket.
	ErrInvalidFilter = errors.New("invalid filter selection")

	// ErrNoSearchCriteria reports a search request in which every filter was
	// left empty. Unconstrained full-catalog searches are rejected.
	ErrNoSearchCriteria = errors.New("search criteria not found")

	// ErrEmptyPolygon reports an area search with zero vertices.
	ErrEmptyPolygon = errors.New("polygon has no vertices")

	// ErrReferenceNotFound reports a recommendation request whose reference
	// furniture id does not resolve.
	ErrReferenceNotFound = errors.New("reference object not found")

	// ErrOutOfStock reports a failed reservation. A missing id and an
	// exhausted stock are deliberately not distinguished.
	ErrOutOfStock = errors.New("out of stock or not found")

	// ErrStorageUnavailable wraps any storage failure, including cancelled or
	// timed-out calls. The service never retries; that is the caller's call.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
