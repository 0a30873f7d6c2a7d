package domain

import (
	"net/url"
	"strings"
)

// MaxCompetitors is the number of verified competitors a lookup aims for
const MaxCompetitors = 5

// StoreRecord represents a competitor store
type StoreRecord struct {
	Name        string `json:"name" db:"name"`
	URL         string `json:"url" db:"url"`
	Domain      string `json:"domain" db:"domain"`
	Description string `json:"description,omitempty" db:"description"`
}

// Key returns the deduplication key for the store: its normalized domain,
// falling back to the host of its URL when no domain is set.
func (s StoreRecord) Key() string {
	if key := NormalizeDomain(s.Domain); key != "" {
		return key
	}
	return NormalizeDomain(s.URL)
}

// Normalized returns a copy with a canonical domain and a URL that carries a scheme
func (s StoreRecord) Normalized() StoreRecord {
	out := s
	out.Name = strings.TrimSpace(s.Name)
	out.Domain = s.Key()
	out.URL = strings.TrimSpace(s.URL)
	if out.URL == "" && out.Domain != "" {
		out.URL = "https://" + out.Domain
	}
	return out
}

// NormalizeDomain reduces a domain or URL to a lowercase host with no scheme,
// port, path or leading "www.".
func NormalizeDomain(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

// DedupeStores returns stores with duplicate domains removed; the first occurrence wins.
// Records without a usable domain are dropped.
func DedupeStores(stores []StoreRecord) []StoreRecord {
	seen := make(map[string]bool, len(stores))
	out := make([]StoreRecord, 0, len(stores))
	for _, s := range stores {
		key := s.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
