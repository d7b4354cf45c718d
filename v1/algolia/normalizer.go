package algolia

import (
	"time"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// ScoreKey is the hit key carrying the relevance score.
const ScoreKey = "_score"

// Normalize shapes store rows and the match count into an Algolia response.
//
// Each hit is a copy of its row plus "_score" = 1 - distance. A distance of 0
// is a perfect match and scores 1; rows without a distance (keyword matches)
// score nil, which encodes as JSON null.
//
// nbHits is the number of hits on this page, not the total; nbPages is
// derived from total. page and hitsPerPage are the effective request values.
// Hits is never nil so it encodes as [].
func Normalize(rows []vectordb.Row, total int, params SearchParams, elapsed time.Duration) SearchResponse {
	limit, page := pagination(params)

	hits := make([]Hit, 0, len(rows))
	for _, row := range rows {
		hits = append(hits, toHit(row))
	}

	return SearchResponse{
		Hits:             hits,
		NbHits:           len(hits),
		Page:             page,
		NbPages:          pageCount(total, limit),
		HitsPerPage:      limit,
		ProcessingTimeMS: elapsed.Milliseconds(),
		Query:            params.Query,
	}
}

func toHit(row vectordb.Row) Hit {
	hit := make(Hit, len(row)+1)
	for k, v := range row {
		hit[k] = v
	}

	if distance, ok := row.Distance(); ok {
		hit[ScoreKey] = 1 - distance
	} else {
		hit[ScoreKey] = nil
	}
	return hit
}

// pageCount returns ceil(total/limit), 0 for an empty result.
func pageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
