package domain

import "errors"

var (
	// ErrNoHistory is returned when a history query window contains zero
	// observations. Callers must not conflate this with a price of zero.
	ErrNoHistory = errors.New("no price history in window")

	// ErrMalformedListing is returned when a catalog entry is missing a
	// field required for matching.
	ErrMalformedListing = errors.New("catalog listing is missing a required field")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")

	// ErrTrendyolAPIFailure is returned when a Trendyol API request fails
	ErrTrendyolAPIFailure = errors.New("Trendyol API request failed")

	// ErrHepsiburadaAPIFailure is returned when a Hepsiburada API request fails
	ErrHepsiburadaAPIFailure = errors.New("Hepsiburada API request failed")

	// ErrBatchNotFound is returned when a batch request ID is unknown upstream
	ErrBatchNotFound = errors.New("batch request not found")
)
