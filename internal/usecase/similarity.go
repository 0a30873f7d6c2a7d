package usecase

import "strings"

// SimilarityPolicy weights the two string similarity measures used for fuzzy niche matching
type SimilarityPolicy struct {
	LevenshteinWeight float64
	JaccardWeight     float64
	// MinScore is the lowest combined score accepted as a fuzzy match
	MinScore float64
}

// DefaultSimilarityPolicy scores 0.7 * Levenshtein similarity + 0.3 * token Jaccard
var DefaultSimilarityPolicy = SimilarityPolicy{
	LevenshteinWeight: 0.7,
	JaccardWeight:     0.3,
	MinScore:          0.6,
}

// Score combines both measures for a pair of normalized strings
func (p SimilarityPolicy) Score(a, b string) float64 {
	return p.LevenshteinWeight*levenshteinSimilarity(a, b) + p.JaccardWeight*jaccardSimilarity(a, b)
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Two rows instead of the full matrix
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// levenshteinSimilarity is 1 - distance/maxLen over the whitespace-stripped strings
func levenshteinSimilarity(a, b string) float64 {
	a = stripSpaces(a)
	b = stripSpaces(b)
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// jaccardSimilarity compares whitespace-tokenized word sets
func jaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
