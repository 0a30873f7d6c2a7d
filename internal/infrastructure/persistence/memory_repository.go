package persistence

import (
	"context"
	"sort"
	"sync"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

// MemoryRepository keeps curated lists in process memory for local runs
type MemoryRepository struct {
	mu      sync.RWMutex
	curated map[string][]domain.StoreRecord
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{curated: make(map[string][]domain.StoreRecord)}
}

// GetCurated returns a copy of the stored list for a niche
func (r *MemoryRepository) GetCurated(_ context.Context, niche string) ([]domain.StoreRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stores, ok := r.curated[nicheKey(niche)]
	if !ok || len(stores) == 0 {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.StoreRecord, len(stores))
	copy(out, stores)
	return out, nil
}

// ReplaceCurated swaps the stored list for a niche
func (r *MemoryRepository) ReplaceCurated(_ context.Context, niche string, stores []domain.StoreRecord) error {
	key := nicheKey(niche)
	if key == "" {
		return domain.ErrInvalidNiche
	}

	normalized := make([]domain.StoreRecord, 0, len(stores))
	for _, s := range domain.DedupeStores(stores) {
		normalized = append(normalized, s.Normalized())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(normalized) == 0 {
		delete(r.curated, key)
		return nil
	}
	r.curated[key] = normalized
	return nil
}

// ListNiches returns every niche with a stored list, sorted
func (r *MemoryRepository) ListNiches(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	niches := make([]string, 0, len(r.curated))
	for k := range r.curated {
		niches = append(niches, k)
	}
	sort.Strings(niches)
	return niches, nil
}

var _ domain.CuratedRepository = (*MemoryRepository)(nil)
