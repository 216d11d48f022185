package domain

import "errors"

var (
	// ErrProfileIncomplete is returned when a wizard step is missing required
	// fields; it blocks the step transition rather than failing the request
	ErrProfileIncomplete = errors.New("profile not ready: required fields missing or invalid")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoMatches is returned when the filtered candidate set is empty;
	// the UI shows its empty state for this
	ErrNoMatches = errors.New("no products match the search criteria")

	// ErrCatalogUnavailable is returned when the product source request fails
	ErrCatalogUnavailable = errors.New("product catalog request failed")

	// ErrSearchSuperseded is returned when a newer search for the same session
	// was issued while this one was in flight; the stale result is discarded
	ErrSearchSuperseded = errors.New("search superseded by a newer request")

	// ErrUnparseableAdvice is returned when the generative advisor responds
	// with output that doesn't fit the expected format
	ErrUnparseableAdvice = errors.New("generative advisor returned unparseable output")

	// ErrAdvisorUnavailable is returned when the generative advisor request fails
	ErrAdvisorUnavailable = errors.New("generative advisor request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
