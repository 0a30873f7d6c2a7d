package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/logger"
)

// MaxLookupTimeout caps the per-request discovery budget
const MaxLookupTimeout = 2 * time.Minute

// Result sources
const (
	SourceCache     = "cache"
	SourceDiscovery = "discovery"
	SourceCurated   = "curated"
)

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	CacheTTL       time.Duration
	DefaultTimeout time.Duration
	MaxAttempts    int
	FastVerify     bool
}

// LookupRequest is one caller request for verified competitors
type LookupRequest struct {
	Niche   string
	Fast    bool
	Timeout time.Duration
}

// LookupResult is the caller-facing answer
type LookupResult struct {
	Niche       string               `json:"niche"`
	Normalized  string               `json:"normalized"`
	Canonical   string               `json:"canonical"`
	Competitors []domain.StoreRecord `json:"competitors"`
	Source      string               `json:"source"`
	Partial     bool                 `json:"partial"`
	CachedAt    time.Time            `json:"cachedAt,omitempty"`
}

// LookupService wraps the orchestrator with validation, caching and persistence
type LookupService struct {
	competitors *CompetitorService
	normalizer  *NicheNormalizer
	cache       domain.CacheRepository
	curated     domain.CuratedRepository
	config      LookupServiceConfig
	logger      logger.Logger
}

// NewLookupService creates a lookup service. cache and curated may be nil.
func NewLookupService(
	competitors *CompetitorService,
	normalizer *NicheNormalizer,
	cache domain.CacheRepository,
	curated domain.CuratedRepository,
	config LookupServiceConfig,
	log logger.Logger,
) *LookupService {
	if config.CacheTTL == 0 {
		config.CacheTTL = 10 * time.Minute
	}
	if config.DefaultTimeout <= 0 {
		config.DefaultTimeout = 45 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &LookupService{
		competitors: competitors,
		normalizer:  normalizer,
		cache:       cache,
		curated:     curated,
		config:      config,
		logger:      log,
	}
}

// Resolve exposes the niche normalizer to callers
func (s *LookupService) Resolve(niche string) (Resolution, []string) {
	res := s.normalizer.Resolve(niche)
	return res, s.normalizer.ExpandVariations(res.Canonical)
}

// Lookup returns verified competitors for a niche.
// Flow: validate -> check cache -> run discovery -> cache -> persist -> return
func (s *LookupService) Lookup(ctx context.Context, req LookupRequest) (*LookupResult, error) {
	normalized := s.normalizer.Normalize(req.Niche)
	if normalized == "" {
		return nil, domain.ErrInvalidNiche
	}

	cacheKey := generateCacheKey(req.Fast, normalized)

	if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
		cached.Source = SourceCache
		return cached, nil
	}

	result := s.competitors.GetVerifiedCompetitors(ctx, req.Niche, DiscoveryOptions{
		Fast:        req.Fast,
		Deadline:    DeadlineAfter(s.timeout(req.Timeout)),
		MaxAttempts: s.config.MaxAttempts,
		FastVerify:  s.config.FastVerify,
	})

	if len(result.Stores) == 0 {
		return nil, domain.ErrNoCompetitors
	}

	out := &LookupResult{
		Niche:       req.Niche,
		Normalized:  result.Normalized,
		Canonical:   result.Canonical,
		Competitors: result.Stores,
		Source:      SourceDiscovery,
		Partial:     result.TimedOut,
	}

	// Log but don't fail if caching fails
	if err := s.setInCache(ctx, cacheKey, out); err != nil {
		s.logger.Warn("failed to cache lookup result", logger.String("key", cacheKey), logger.Error(err))
	}

	if !req.Fast {
		s.persist(ctx, normalized, result.Stores)
	}

	return out, nil
}

// Refresh runs a thorough discovery without consulting the cache and replaces the
// curated list when at least one store was verified.
func (s *LookupService) Refresh(ctx context.Context, niche string, timeout time.Duration) (*DiscoveryResult, error) {
	normalized := s.normalizer.Normalize(niche)
	if normalized == "" {
		return nil, domain.ErrInvalidNiche
	}

	result := s.competitors.GetVerifiedCompetitors(ctx, niche, DiscoveryOptions{
		Deadline:    DeadlineAfter(s.timeout(timeout)),
		MaxAttempts: s.config.MaxAttempts,
		FastVerify:  s.config.FastVerify,
	})
	if len(result.Stores) == 0 {
		return result, domain.ErrNoCompetitors
	}

	if s.curated != nil {
		if err := s.curated.ReplaceCurated(ctx, normalized, result.Stores); err != nil {
			return result, fmt.Errorf("failed to store curated list: %w", err)
		}
	}
	return result, nil
}

// Curated returns the stored curated list for a niche
func (s *LookupService) Curated(ctx context.Context, niche string) (*LookupResult, error) {
	normalized := s.normalizer.Normalize(niche)
	if normalized == "" {
		return nil, domain.ErrInvalidNiche
	}
	if s.curated == nil {
		return nil, domain.ErrNotFound
	}

	stores, err := s.curated.GetCurated(ctx, normalized)
	if err != nil {
		return nil, err
	}

	return &LookupResult{
		Niche:       niche,
		Normalized:  normalized,
		Canonical:   s.normalizer.MapToCanonical(niche),
		Competitors: stores,
		Source:      SourceCurated,
	}, nil
}

// timeout applies the configured default and the upper bound
func (s *LookupService) timeout(requested time.Duration) time.Duration {
	if requested <= 0 {
		requested = s.config.DefaultTimeout
	}
	return min(requested, MaxLookupTimeout)
}

func (s *LookupService) persist(ctx context.Context, normalized string, stores []domain.StoreRecord) {
	if s.curated == nil {
		return
	}
	if err := s.curated.ReplaceCurated(ctx, normalized, stores); err != nil {
		s.logger.Warn("failed to persist curated list", logger.String("niche", normalized), logger.Error(err))
	}
}

// generateCacheKey creates the cache key for a lookup.
// Format: "competitors:{fast|verified}:{normalized_niche}"
func generateCacheKey(fast bool, normalized string) string {
	mode := "verified"
	if fast {
		mode = "fast"
	}
	return fmt.Sprintf("competitors:%s:%s", mode, normalized)
}

func (s *LookupService) getFromCache(ctx context.Context, key string) (*LookupResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		return nil, err
	}

	var result LookupResult
	if err := json.Unmarshal(raw, &result); err != nil {
		s.logger.Warn("discarding undecodable cache entry", logger.String("key", key), logger.Error(err))
		return nil, domain.ErrCacheMiss
	}
	if len(result.Competitors) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return &result, nil
}

func (s *LookupService) setInCache(ctx context.Context, key string, result *LookupResult) error {
	if s.cache == nil {
		return nil
	}
	result.CachedAt = time.Now()
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode lookup result: %w", err)
	}
	return s.cache.Set(ctx, key, raw, s.config.CacheTTL)
}
