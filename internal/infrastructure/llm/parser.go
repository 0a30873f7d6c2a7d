package llm

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

// storeJSON is the record shape the model is asked to produce
type storeJSON struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Domain      string `json:"domain"`
	Description string `json:"description"`
}

// ParseStoreArray extracts the JSON array of stores embedded in free model text.
// Code fences are ignored; the span from the first '[' to the last ']' is decoded.
// Records without a usable domain are dropped and duplicates collapse to the first.
func ParseStoreArray(text string) ([]domain.StoreRecord, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array in response", domain.ErrGeneratorFailure)
	}

	var raw []storeJSON
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: decode stores: %v", domain.ErrGeneratorFailure, err)
	}

	stores := make([]domain.StoreRecord, 0, len(raw))
	for _, r := range raw {
		s := domain.StoreRecord{
			Name:        strings.TrimSpace(r.Name),
			URL:         strings.TrimSpace(r.URL),
			Domain:      strings.TrimSpace(r.Domain),
			Description: strings.TrimSpace(r.Description),
		}.Normalized()
		if s.Domain == "" {
			continue
		}
		if s.Name == "" {
			s.Name = s.Domain
		}
		stores = append(stores, s)
	}

	return domain.DedupeStores(stores), nil
}
