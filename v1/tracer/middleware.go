package tracer

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Middleware starts a server span per HTTP request, continuing any trace
// whose context arrives in the request headers. The outgoing trace context
// is echoed in the response headers so callers can correlate.
//
// The span is named after the chi route pattern once routing is done, e.g.
// "POST /1/indexes/{indexName}/queries".
func (t *Tracer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// MapCarrier lookups use the lowercase W3C header names.
		headers := make(map[string]string, len(r.Header))
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[strings.ToLower(key)] = values[0]
			}
		}

		ctx := t.SetCarrierOnContext(r.Context(), headers)
		ctx, span := t.StartSpan(ctx, r.Method+" "+r.URL.Path)
		defer span.End()

		for key, value := range t.GetCarrier(ctx) {
			w.Header().Set(key, value)
		}

		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				span.SetName(r.Method + " " + pattern)
			}
		}
		t.SetAttributes(span, map[string]interface{}{
			"http.method": r.Method,
			"http.target": r.URL.Path,
		})
	})
}
