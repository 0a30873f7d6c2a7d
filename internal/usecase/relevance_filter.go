package usecase

import (
	"context"
	"strings"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

// RelevanceFilter decides whether a store looks like it belongs to a niche
type RelevanceFilter struct {
	normalizer *NicheNormalizer
	prober     domain.SiteProber
}

// NewRelevanceFilter creates a relevance filter. The prober is only used for content checks.
func NewRelevanceFilter(normalizer *NicheNormalizer, prober domain.SiteProber) *RelevanceFilter {
	return &RelevanceFilter{normalizer: normalizer, prober: prober}
}

// IsRelevant reports whether any niche keyword appears in the store's name, domain or URL.
// When checkContent is set and the metadata check fails, the homepage text is searched too.
// Fetch failures count as not relevant.
func (f *RelevanceFilter) IsRelevant(ctx context.Context, store domain.StoreRecord, niche string, checkContent bool) bool {
	keywords := f.normalizer.Keywords(niche)
	if len(keywords) == 0 {
		return false
	}

	if matchesAny(storeMetadata(store), keywords) {
		return true
	}

	if !checkContent || f.prober == nil {
		return false
	}

	page := f.prober.FetchHTML(ctx, store, domain.ProbeFast)
	if !page.Found() {
		return false
	}
	return matchesAny(strings.ToLower(extractPageText(page.HTML)), keywords)
}

// storeMetadata leaves out the description; generated candidates describe themselves in the niche's terms
func storeMetadata(store domain.StoreRecord) string {
	return strings.ToLower(strings.Join([]string{store.Name, store.Domain, store.URL}, " "))
}

func matchesAny(haystack string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(haystack, k) {
			return true
		}
	}
	return false
}
