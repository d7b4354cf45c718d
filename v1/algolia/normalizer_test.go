package algolia

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

func TestNormalize_Empty(t *testing.T) {
	resp := Normalize(nil, 0, SearchParams{}, 0)

	assert.Equal(t, 0, resp.NbHits)
	assert.Equal(t, 0, resp.NbPages)
	assert.Equal(t, 0, resp.Page)
	assert.Equal(t, 20, resp.HitsPerPage)
	assert.Equal(t, "", resp.Query)
	require.NotNil(t, resp.Hits)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hits":[]`)
}

func TestNormalize_Pagination(t *testing.T) {
	rows := []vectordb.Row{
		{"title": "iPhone 12"},
		{"title": "Google Pixel 6"},
	}

	resp := Normalize(rows, 3, SearchParams{Query: "phone", HitsPerPage: 2}, 15*time.Millisecond)

	assert.Equal(t, 2, resp.NbHits)
	assert.Len(t, resp.Hits, 2)
	assert.Equal(t, 2, resp.NbPages)
	assert.Equal(t, 2, resp.HitsPerPage)
	assert.Equal(t, int64(15), resp.ProcessingTimeMS)
	assert.Equal(t, "phone", resp.Query)
}

func TestNormalize_PageCount(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{3, 2, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageCount(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNormalize_Score(t *testing.T) {
	rows := []vectordb.Row{
		{"title": "exact", "_additional": map[string]any{"id": "a", "distance": 0.0}},
		{"title": "near", "_additional": map[string]any{"id": "b", "distance": 0.25}},
		{"title": "keyword", "_additional": map[string]any{"id": "c", "distance": nil}},
		{"title": "bare"},
	}

	resp := Normalize(rows, 4, SearchParams{}, 0)
	require.Len(t, resp.Hits, 4)

	assert.Equal(t, 1.0, resp.Hits[0][ScoreKey])
	assert.Equal(t, 0.75, resp.Hits[1][ScoreKey])
	assert.Nil(t, resp.Hits[2][ScoreKey])
	assert.Contains(t, resp.Hits[2], ScoreKey, "missing distance encodes as null, not as an absent key")
	assert.Nil(t, resp.Hits[3][ScoreKey])

	assert.Equal(t, "exact", resp.Hits[0]["title"])
	assert.Equal(t, rows[0]["_additional"], resp.Hits[0]["_additional"])
}

func TestNormalize_DoesNotMutateRows(t *testing.T) {
	row := vectordb.Row{"title": "iPhone 12"}

	resp := Normalize([]vectordb.Row{row}, 1, SearchParams{}, 0)
	resp.Hits[0]["title"] = "changed"

	assert.NotContains(t, row, ScoreKey)
	assert.Equal(t, "iPhone 12", row["title"])
}

func TestNormalize_EchoesPage(t *testing.T) {
	resp := Normalize(nil, 100, SearchParams{Page: 3, HitsPerPage: 10}, 0)

	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 10, resp.HitsPerPage)
	assert.Equal(t, 10, resp.NbPages)
}
