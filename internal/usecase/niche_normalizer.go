package usecase

import (
	"regexp"
	"strings"

	"github.com/BeefBowl03/domain-generator/internal/infrastructure/catalog"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// minContainmentLength keeps very short inputs from matching every key by substring
const minContainmentLength = 3

// MatchStrategy names the layer that resolved a niche
type MatchStrategy string

const (
	MatchExact    MatchStrategy = "exact"
	MatchUmbrella MatchStrategy = "umbrella"
	MatchSynonym  MatchStrategy = "synonym"
	MatchContains MatchStrategy = "contains"
	MatchCluster  MatchStrategy = "cluster"
	MatchFuzzy    MatchStrategy = "fuzzy"
	MatchDefault  MatchStrategy = "default"
)

// Resolution describes how a raw niche was mapped onto the catalog
type Resolution struct {
	Input      string        `json:"input"`
	Normalized string        `json:"normalized"`
	Canonical  string        `json:"canonical"`
	Strategy   MatchStrategy `json:"strategy"`
	Score      float64       `json:"score,omitempty"`
}

type fuzzyCandidate struct {
	term  string
	niche string
}

// NicheNormalizer canonicalizes free-text niches against the seed catalog.
// It never invents a niche: anything unmatched resolves to the catalog default.
type NicheNormalizer struct {
	catalog *catalog.Catalog
	lexicon catalog.Lexicon
	policy  SimilarityPolicy
	fuzzy   []fuzzyCandidate
}

// NewNicheNormalizer creates a normalizer over the given catalog and lookup tables
func NewNicheNormalizer(c *catalog.Catalog, lexicon catalog.Lexicon, policy SimilarityPolicy) *NicheNormalizer {
	n := &NicheNormalizer{
		catalog: c,
		lexicon: lexicon,
		policy:  policy,
	}

	for _, key := range c.Keys() {
		n.fuzzy = append(n.fuzzy, fuzzyCandidate{term: key, niche: key})
	}
	for _, group := range lexicon.PopularSynonyms {
		if !c.HasSeeds(group.Niche) {
			continue
		}
		for _, term := range group.Terms {
			n.fuzzy = append(n.fuzzy, fuzzyCandidate{term: term, niche: group.Niche})
		}
	}

	return n
}

// Normalize lowercases, strips punctuation, collapses whitespace and applies the alias table
func (n *NicheNormalizer) Normalize(raw string) string {
	normalized := strings.ToLower(raw)
	normalized = punctuationRegex.ReplaceAllString(normalized, "")
	normalized = multipleSpacesRegex.ReplaceAllString(normalized, " ")
	normalized = strings.TrimSpace(normalized)

	if alias, ok := n.lexicon.Aliases[strings.ReplaceAll(normalized, " ", "")]; ok {
		return alias
	}
	return normalized
}

// MapToCanonical returns the catalog key for a raw niche
func (n *NicheNormalizer) MapToCanonical(raw string) string {
	return n.Resolve(raw).Canonical
}

// Resolve maps a raw niche to a catalog key, trying each layer in order
func (n *NicheNormalizer) Resolve(raw string) Resolution {
	normalized := n.Normalize(raw)
	res := Resolution{Input: raw, Normalized: normalized}

	resolved := func(key string, strategy MatchStrategy, score float64) Resolution {
		res.Canonical = key
		res.Strategy = strategy
		res.Score = score
		return res
	}

	if normalized == "" {
		return resolved(n.catalog.DefaultKey(), MatchDefault, 0)
	}

	if n.catalog.Has(normalized) {
		return resolved(normalized, MatchExact, 1)
	}

	padded := " " + normalized + " "
	for _, group := range n.lexicon.Umbrellas {
		if !n.catalog.Has(group.Niche) {
			continue
		}
		for _, term := range group.Terms {
			if strings.Contains(padded, " "+term+" ") {
				return resolved(group.Niche, MatchUmbrella, 1)
			}
		}
	}

	for _, group := range n.lexicon.PopularSynonyms {
		if !n.catalog.HasSeeds(group.Niche) {
			continue
		}
		for _, term := range group.Terms {
			if normalized == term {
				return resolved(group.Niche, MatchSynonym, 1)
			}
		}
	}

	if len(normalized) >= minContainmentLength {
		for _, key := range n.catalog.Keys() {
			if strings.Contains(key, normalized) || strings.Contains(normalized, key) {
				return resolved(key, MatchContains, 1)
			}
		}
	}

	for _, cluster := range n.lexicon.Clusters {
		if n.catalog.Has(cluster.Niche) && cluster.Pattern.MatchString(normalized) {
			return resolved(cluster.Niche, MatchCluster, 1)
		}
	}

	if key, score, ok := n.bestFuzzyMatch(normalized); ok {
		return resolved(key, MatchFuzzy, score)
	}

	return resolved(n.catalog.DefaultKey(), MatchDefault, 0)
}

// bestFuzzyMatch picks the candidate with the strictly highest score; ties keep the first
func (n *NicheNormalizer) bestFuzzyMatch(normalized string) (string, float64, bool) {
	bestScore := -1.0
	bestNiche := ""

	for _, candidate := range n.fuzzy {
		score := n.policy.Score(normalized, candidate.term)
		if score > bestScore {
			bestScore = score
			bestNiche = candidate.niche
		}
	}

	if bestNiche == "" || bestScore < n.policy.MinScore {
		return "", bestScore, false
	}
	return bestNiche, bestScore, true
}

// ExpandVariations returns the canonical key, its singular/plural toggle and its related terms
func (n *NicheNormalizer) ExpandVariations(canonical string) []string {
	var variations []string
	seen := make(map[string]bool)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		variations = append(variations, v)
	}

	add(canonical)
	add(togglePlural(canonical))
	for _, term := range n.lexicon.RelatedTerms[canonical] {
		add(term)
	}

	return variations
}

func togglePlural(s string) string {
	if strings.HasSuffix(s, "s") {
		return strings.TrimSuffix(s, "s")
	}
	return s + "s"
}

// Keywords builds the relevance keyword set for a niche: the normalized form, every
// variation of its canonical key and every word of those, dropping words under 3 chars.
func (n *NicheNormalizer) Keywords(niche string) []string {
	res := n.Resolve(niche)
	phrases := append([]string{res.Normalized}, n.ExpandVariations(res.Canonical)...)

	var keywords []string
	seen := make(map[string]bool)
	add := func(k string) {
		if len(k) < 3 || seen[k] {
			return
		}
		seen[k] = true
		keywords = append(keywords, k)
	}

	for _, phrase := range phrases {
		add(phrase)
		for _, token := range strings.Fields(phrase) {
			add(token)
		}
	}

	return keywords
}
