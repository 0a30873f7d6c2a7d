package usecase

import (
	"github.com/BeefBowl03/domain-generator/internal/domain"
	"github.com/BeefBowl03/domain-generator/internal/infrastructure/catalog"
)

// SeedSource answers catalog lookups for free-text niches
type SeedSource struct {
	catalog    *catalog.Catalog
	normalizer *NicheNormalizer
}

// NewSeedSource creates a seed source over an immutable catalog
func NewSeedSource(c *catalog.Catalog, normalizer *NicheNormalizer) *SeedSource {
	return &SeedSource{catalog: c, normalizer: normalizer}
}

// Known returns the curated list stored under a canonical key
func (s *SeedSource) Known(canonicalKey string) []domain.StoreRecord {
	return s.catalog.Known(canonicalKey)
}

// Wide returns the union of the curated lists for every variation of the niche's canonical key
func (s *SeedSource) Wide(niche string) []domain.StoreRecord {
	canonical := s.normalizer.MapToCanonical(niche)
	return s.catalog.Collect(s.normalizer.ExpandVariations(canonical))
}

// Global returns every curated store across all niches
func (s *SeedSource) Global() []domain.StoreRecord {
	return s.catalog.Global()
}

// Excluded reports whether a store belongs to an excluded retailer
func (s *SeedSource) Excluded(store domain.StoreRecord) bool {
	return s.catalog.IsExcluded(store.Key())
}
