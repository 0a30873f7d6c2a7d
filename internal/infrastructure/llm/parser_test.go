package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeefBowl03/domain-generator/internal/domain"
)

func TestParseStoreArray(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		stores, err := ParseStoreArray(`[{"name":"Drone Nerds","url":"https://www.dronenerds.com","domain":"dronenerds.com"}]`)
		require.NoError(t, err)
		require.Len(t, stores, 1)
		assert.Equal(t, "Drone Nerds", stores[0].Name)
		assert.Equal(t, "dronenerds.com", stores[0].Domain)
	})

	t.Run("fenced array with surrounding prose", func(t *testing.T) {
		text := "Here are some stores:\n```json\n[\n  {\"name\": \"A\", \"domain\": \"WWW.A.com\"},\n  {\"name\": \"B\", \"url\": \"https://b.com/shop\"}\n]\n```\nGood luck!"

		stores, err := ParseStoreArray(text)
		require.NoError(t, err)
		require.Len(t, stores, 2)
		assert.Equal(t, "a.com", stores[0].Domain)
		assert.Equal(t, "https://a.com", stores[0].URL)
		assert.Equal(t, "b.com", stores[1].Domain)
	})

	t.Run("array wrapped in object", func(t *testing.T) {
		stores, err := ParseStoreArray(`{"stores":[{"name":"A","domain":"a.com"}]}`)
		require.NoError(t, err)
		assert.Len(t, stores, 1)
	})

	t.Run("drops records without domain and duplicates", func(t *testing.T) {
		stores, err := ParseStoreArray(`[{"name":"No domain"},{"domain":"a.com"},{"name":"Again","domain":"https://www.a.com"}]`)
		require.NoError(t, err)
		require.Len(t, stores, 1)
		assert.Equal(t, "a.com", stores[0].Name)
	})

	t.Run("empty array", func(t *testing.T) {
		stores, err := ParseStoreArray(`[]`)
		require.NoError(t, err)
		assert.Empty(t, stores)
	})

	tests := []struct {
		name string
		text string
	}{
		{"no array", "I cannot help with that."},
		{"malformed json", `[{"name": "A", "domain": }]`},
		{"reversed brackets", "] oops ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStoreArray(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrGeneratorFailure))
		})
	}
}
