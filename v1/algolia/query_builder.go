package algolia

import (
	"strings"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

const (
	// DefaultHitsPerPage is the page size used when hitsPerPage is unset or not positive.
	DefaultHitsPerPage = 20

	// HybridAlpha weighs vector against keyword scoring in hybrid search.
	HybridAlpha float32 = 0.5
)

// DefaultFields is the selection set requested when Config.Fields is empty.
var DefaultFields = []string{"title", "description", "price", "_additional { id distance }"}

// QueryOptions carries the per-index settings that are not part of the request.
type QueryOptions struct {
	ClassName string
	Fields    []string
}

// Queries is the translated form of one search request.
type Queries struct {
	Get    vectordb.GetQuery
	Count  vectordb.AggregateQuery
	Filter FilterResult
}

// BuildQueries translates Algolia search parameters into a data query and a
// count query. Both share the same filter, so the total and the page agree.
//
// Search mode: hybrid (alpha 0.5) when Hybrid is set and the query is
// non-empty, otherwise BM25 for a non-empty query. nearText and nearObject
// pass through unchanged and may combine with either.
//
// Pagination: limit is HitsPerPage or DefaultHitsPerPage when not positive;
// offset is Page*limit with negative pages clamped to 0.
func BuildQueries(params SearchParams, opts QueryOptions) Queries {
	limit, page := pagination(params)

	fields := opts.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	filter := ParseFilters(params.Filters)

	get := vectordb.GetQuery{
		ClassName: opts.ClassName,
		Fields:    append([]string(nil), fields...),
		Where:     filter.Filter,
		Limit:     limit,
		Offset:    page * limit,
	}

	switch {
	case params.Hybrid && params.Query != "":
		get.Hybrid = &vectordb.Hybrid{Query: params.Query, Alpha: HybridAlpha}
	case params.Query != "":
		get.BM25 = &vectordb.BM25{Query: params.Query}
	}

	get.NearText = params.NearText
	get.NearObject = params.NearObject
	get.Sort = buildSort(params.SortBy)

	return Queries{
		Get:    get,
		Count:  vectordb.AggregateQuery{ClassName: opts.ClassName, Where: filter.Filter},
		Filter: filter,
	}
}

// pagination returns the effective page size and page index of params.
func pagination(params SearchParams) (limit, page int) {
	limit = params.HitsPerPage
	if limit <= 0 {
		limit = DefaultHitsPerPage
	}
	page = params.Page
	if page < 0 {
		page = 0
	}
	return limit, page
}

// buildSort keeps the request order; unknown orders fall back to ascending.
func buildSort(sortBy []SortBy) []vectordb.Sort {
	if len(sortBy) == 0 {
		return nil
	}

	sorts := make([]vectordb.Sort, 0, len(sortBy))
	for _, s := range sortBy {
		order := vectordb.Asc
		if strings.EqualFold(s.Order, string(vectordb.Desc)) {
			order = vectordb.Desc
		}
		sorts = append(sorts, vectordb.Sort{Path: []string{s.Property}, Order: order})
	}
	return sorts
}
