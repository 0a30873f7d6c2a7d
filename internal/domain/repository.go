package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque encoded bytes; a missing or expired key is ErrCacheMiss.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CandidateGenerator produces unverified competitor candidates for a niche or niche variation.
// Implementations are best-effort: an error means "zero candidates from this source".
type CandidateGenerator interface {
	GenerateCompetitors(ctx context.Context, niche string) ([]StoreRecord, error)
}

// SiteProber checks stores over HTTP
type SiteProber interface {
	Exists(ctx context.Context, store StoreRecord, mode ProbeMode) LivenessResult
	FetchHTML(ctx context.Context, store StoreRecord, mode ProbeMode) PageResult
}

// CuratedRepository persists curated competitor lists keyed by niche
type CuratedRepository interface {
	GetCurated(ctx context.Context, niche string) ([]StoreRecord, error)
	ReplaceCurated(ctx context.Context, niche string, stores []StoreRecord) error
	ListNiches(ctx context.Context) ([]string, error)
}
