package domain

import "errors"

var (
	// ErrInvalidNiche is returned when the niche is empty after normalization
	ErrInvalidNiche = errors.New("invalid niche")

	// ErrNoCompetitors is returned when no verified competitor could be found
	ErrNoCompetitors = errors.New("no verified competitors found")

	// ErrGeneratorFailure is returned when the candidate generator request or its parsing fails
	ErrGeneratorFailure = errors.New("candidate generator failed")

	// ErrGeneratorUnavailable is returned when no generator is configured or its circuit is open
	ErrGeneratorUnavailable = errors.New("candidate generator unavailable")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrNotFound is returned when no curated data is stored for a niche
	ErrNotFound = errors.New("not found")
)
