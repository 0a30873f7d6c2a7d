// Package catalog holds the curated seed stores and the excluded-retailer set.
// A Catalog is immutable after construction and safe for concurrent use.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

// Catalog maps canonical niche keys to curated store lists
type Catalog struct {
	entries    map[string][]domain.StoreRecord
	keys       []string
	excluded   map[string]bool
	defaultKey string
}

// New builds a catalog. Every list is normalized, deduplicated by domain and
// stripped of excluded retailers. The default key must be present.
func New(entries map[string][]domain.StoreRecord, excluded []string, defaultKey string) (*Catalog, error) {
	c := &Catalog{
		entries:    make(map[string][]domain.StoreRecord, len(entries)),
		excluded:   make(map[string]bool, len(excluded)),
		defaultKey: defaultKey,
	}

	for _, d := range excluded {
		if key := domain.NormalizeDomain(d); key != "" {
			c.excluded[key] = true
		}
	}

	for key, stores := range entries {
		key = strings.TrimSpace(strings.ToLower(key))
		if key == "" {
			continue
		}
		normalized := make([]domain.StoreRecord, 0, len(stores))
		for _, s := range stores {
			normalized = append(normalized, s.Normalized())
		}
		c.entries[key] = c.FilterExcluded(domain.DedupeStores(normalized))
		c.keys = append(c.keys, key)
	}
	sort.Strings(c.keys)

	if _, ok := c.entries[defaultKey]; !ok {
		return nil, fmt.Errorf("default niche %q is not a catalog key", defaultKey)
	}

	return c, nil
}

// Keys returns the canonical niche keys in sorted order
func (c *Catalog) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Has reports whether key is a canonical niche key
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// HasSeeds reports whether key is a canonical key with at least one store
func (c *Catalog) HasSeeds(key string) bool {
	return len(c.entries[key]) > 0
}

// DefaultKey returns the bucket used when nothing else matches
func (c *Catalog) DefaultKey() string {
	return c.defaultKey
}

// Known returns a copy of the curated stores for a canonical key
func (c *Catalog) Known(key string) []domain.StoreRecord {
	stores := c.entries[key]
	out := make([]domain.StoreRecord, len(stores))
	copy(out, stores)
	return out
}

// Collect returns the union of the lists for the given keys in order,
// deduplicated by domain. Unknown keys are ignored.
func (c *Catalog) Collect(keys []string) []domain.StoreRecord {
	var all []domain.StoreRecord
	for _, key := range keys {
		all = append(all, c.entries[key]...)
	}
	return domain.DedupeStores(all)
}

// Global returns the union of every curated list
func (c *Catalog) Global() []domain.StoreRecord {
	return c.Collect(c.keys)
}

// IsExcluded reports whether the domain, or a parent of it, is an excluded retailer
func (c *Catalog) IsExcluded(rawDomain string) bool {
	host := domain.NormalizeDomain(rawDomain)
	for host != "" {
		if c.excluded[host] {
			return true
		}
		idx := strings.IndexByte(host, '.')
		if idx < 0 {
			break
		}
		host = host[idx+1:]
	}
	return false
}

// FilterExcluded drops stores whose domain is an excluded retailer
func (c *Catalog) FilterExcluded(stores []domain.StoreRecord) []domain.StoreRecord {
	out := make([]domain.StoreRecord, 0, len(stores))
	for _, s := range stores {
		if c.IsExcluded(s.Key()) {
			continue
		}
		out = append(out, s)
	}
	return out
}
