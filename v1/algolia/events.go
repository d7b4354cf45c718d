package algolia

import (
	"context"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// SearchEvent describes one served search, in the shape analytics
// pipelines expect from Algolia's query logs.
type SearchEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	RequestID        string    `json:"requestId,omitempty"`
	IndexName        string    `json:"indexName"`
	ClassName        string    `json:"className"`
	Query            string    `json:"query"`
	Filters          string    `json:"filters,omitempty"`
	FilterStatus     string    `json:"filterStatus"`
	Page             int       `json:"page"`
	HitsPerPage      int       `json:"hitsPerPage"`
	NbHits           int       `json:"nbHits"`
	NbPages          int       `json:"nbPages"`
	ObjectIDs        []string  `json:"objectIDs,omitempty"`
	Cached           bool      `json:"cached"`
	ProcessingTimeMS int64     `json:"processingTimeMS"`
}

// EventPublisher receives a SearchEvent for every successful search.
// *kafka.KafkaClient satisfies it.
type EventPublisher interface {
	PublishSearch(ctx context.Context, event SearchEvent) error
}

// newSearchEvent summarizes resp. Object ids come from the "_additional"
// block of each hit and are skipped when the selection set omits them.
func newSearchEvent(ctx context.Context, req SearchRequest, className string, filter FilterStatus, resp SearchResponse, cached bool) SearchEvent {
	ids := make([]string, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id := vectordb.Row(hit).ID(); id != "" {
			ids = append(ids, id)
		}
	}

	return SearchEvent{
		Timestamp:        time.Now().UTC(),
		RequestID:        chiMiddleware.GetReqID(ctx),
		IndexName:        req.IndexName,
		ClassName:        className,
		Query:            req.Params.Query,
		Filters:          req.Params.Filters,
		FilterStatus:     filter.String(),
		Page:             resp.Page,
		HitsPerPage:      resp.HitsPerPage,
		NbHits:           resp.NbHits,
		NbPages:          resp.NbPages,
		ObjectIDs:        ids,
		Cached:           cached,
		ProcessingTimeMS: resp.ProcessingTimeMS,
	}
}

// publish hands the event to the publisher. Failures never fail a search.
func (a *Adapter) publish(ctx context.Context, event SearchEvent) {
	if a.events == nil {
		return
	}
	if err := a.events.PublishSearch(ctx, event); err != nil {
		a.logger.Warn("Failed to publish search event", err, map[string]interface{}{
			"index": event.IndexName,
		})
	}
}
