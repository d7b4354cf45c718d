package algolia

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds the size of a decoded request body.
const maxBodyBytes = 1 << 20

// multiQueryBody is the body of POST /1/indexes/*/queries.
type multiQueryBody struct {
	Requests []SearchRequest `json:"requests"`
}

// errorBody mirrors Algolia's error payload.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// NewHandler returns the Algolia-compatible HTTP API of adapter:
//
//	POST /1/indexes/*/queries            {"requests":[{"indexName","params"}]} -> {"results":[...]}
//	POST /1/indexes/{indexName}/query    {"params": ...} or bare params   -> one result
//
// InstantSearch clients can point their host at this handler unchanged.
// Extra middleware (metrics, auth) wraps the routes in order.
func NewHandler(adapter *Adapter, logger Logger, middlewares ...func(http.Handler) http.Handler) http.Handler {
	if logger == nil {
		logger = nopLogger{}
	}
	h := &handler{adapter: adapter, logger: logger}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Route("/1/indexes/{indexName}", func(r chi.Router) {
		r.Post("/queries", h.multiQuery)
		r.Post("/query", h.singleQuery)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

type handler struct {
	adapter *Adapter
	logger  Logger
}

func (h *handler) multiQuery(w http.ResponseWriter, r *http.Request) {
	var body multiQueryBody
	if err := decodeBody(w, r, &body); err != nil {
		h.logger.Warn("Rejecting multi-query body", err, nil)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.adapter.Search(r.Context(), body.Requests)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) singleQuery(w http.ResponseWriter, r *http.Request) {
	raw, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := decodeSingleParams(raw)
	if err != nil {
		h.logger.Warn("Rejecting query body", err, nil)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req := SearchRequest{IndexName: chi.URLParam(r, "indexName"), Params: params}
	resp, err := h.adapter.Search(r.Context(), []SearchRequest{req})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp.Results[0])
}

// decodeSingleParams accepts {"params": ...} as Algolia clients send it, and
// falls back to reading the body itself as parameters.
func decodeSingleParams(raw []byte) (SearchParams, error) {
	var wrapped struct {
		Params *SearchParams `json:"params"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return SearchParams{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	if wrapped.Params != nil {
		return *wrapped.Params, nil
	}

	var params SearchParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return SearchParams{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	return params, nil
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("empty body")
	}
	return raw, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message, Status: status})
}
