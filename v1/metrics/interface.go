package metrics

import (
	"net/http"
	"time"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// MetricsCollector provides an interface for collecting and exposing application metrics.
//
// This interface is implemented by the concrete *Metrics type, which also
// satisfies algolia.Recorder and observability.Observer.
type MetricsCollector interface {
	observability.Observer

	// ObserveSearch records one search request of an Algolia batch.
	ObserveSearch(index, status string, duration time.Duration)

	// ObserveFilter counts a filter expression by translation outcome
	// ("absent", "applied", "rejected").
	ObserveFilter(status string)

	// Middleware records HTTP request duration and count per chi route.
	Middleware(next http.Handler) http.Handler
}

var _ MetricsCollector = (*Metrics)(nil)
