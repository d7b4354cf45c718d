package algolia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// SearchRequest is one entry of an Algolia multi-query batch.
type SearchRequest struct {
	// IndexName selects the target class through Config.IndexClasses.
	// Empty or unknown names fall back to Config.ClassName.
	IndexName string `json:"indexName,omitempty"`

	// Params are the search parameters. They may arrive as a JSON object or
	// as Algolia's URL-encoded string form ("query=phone&hitsPerPage=2").
	Params SearchParams `json:"params"`
}

// SortBy orders results by one property. Order defaults to "asc".
type SortBy struct {
	Property string `json:"property"`
	Order    string `json:"order,omitempty"`
}

// SearchParams are the Algolia search parameters understood by the adapter.
// Unknown Algolia parameters (facets, highlight tags, ...) are ignored.
type SearchParams struct {
	Query       string               `json:"query,omitempty"`
	Page        int                  `json:"page,omitempty"`
	HitsPerPage int                  `json:"hitsPerPage,omitempty"`
	Filters     string               `json:"filters,omitempty"`
	NearText    *vectordb.NearText   `json:"nearText,omitempty"`
	NearObject  *vectordb.NearObject `json:"nearObject,omitempty"`
	Hybrid      bool                 `json:"hybrid,omitempty"`
	SortBy      []SortBy             `json:"sortBy,omitempty"`
}

// Hit is one result row plus the computed "_score".
type Hit map[string]any

// SearchResponse is the Algolia-shaped result page of one request.
type SearchResponse struct {
	Hits             []Hit  `json:"hits"`
	NbHits           int    `json:"nbHits"`
	Page             int    `json:"page"`
	NbPages          int    `json:"nbPages"`
	HitsPerPage      int    `json:"hitsPerPage"`
	ProcessingTimeMS int64  `json:"processingTimeMS"`
	Query            string `json:"query"`
}

// BatchResponse holds one SearchResponse per request, in request order.
type BatchResponse struct {
	Results []SearchResponse `json:"results"`
}

// UnmarshalJSON accepts both the object form and the URL-encoded string form
// of Algolia search parameters.
func (p *SearchParams) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return err
		}
		parsed, err := parseURLParams(encoded)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}

	type alias SearchParams
	var a alias
	if err := json.Unmarshal(trimmed, &a); err != nil {
		return err
	}
	*p = SearchParams(a)
	return nil
}

// parseURLParams decodes Algolia's "key=value&..." parameter string.
// Structured values (nearText, nearObject, sortBy) are JSON-encoded inside
// the query string, the same way Algolia encodes arrays.
func parseURLParams(encoded string) (SearchParams, error) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return SearchParams{}, fmt.Errorf("invalid params string: %w", err)
	}

	var p SearchParams
	p.Query = values.Get("query")
	p.Filters = values.Get("filters")

	if v := values.Get("page"); v != "" {
		if p.Page, err = strconv.Atoi(v); err != nil {
			return SearchParams{}, fmt.Errorf("invalid page %q: %w", v, err)
		}
	}
	if v := values.Get("hitsPerPage"); v != "" {
		if p.HitsPerPage, err = strconv.Atoi(v); err != nil {
			return SearchParams{}, fmt.Errorf("invalid hitsPerPage %q: %w", v, err)
		}
	}
	if v := values.Get("hybrid"); v != "" {
		if p.Hybrid, err = strconv.ParseBool(v); err != nil {
			return SearchParams{}, fmt.Errorf("invalid hybrid %q: %w", v, err)
		}
	}

	jsonValues := []struct {
		key    string
		target any
	}{
		{"nearText", &p.NearText},
		{"nearObject", &p.NearObject},
		{"sortBy", &p.SortBy},
	}
	for _, jv := range jsonValues {
		v := values.Get(jv.key)
		if v == "" {
			continue
		}
		if err := json.Unmarshal([]byte(v), jv.target); err != nil {
			return SearchParams{}, fmt.Errorf("invalid %s: %w", jv.key, err)
		}
	}

	return p, nil
}
