package vectordb

// AdditionalKey is the row key under which stores place object metadata
// (id, distance, score), mirroring Weaviate's "_additional" selection.
const AdditionalKey = "_additional"

// Additional returns the metadata map of a row, or nil when absent.
func (r Row) Additional() map[string]any {
	if r == nil {
		return nil
	}
	additional, _ := r[AdditionalKey].(map[string]any)
	return additional
}

// Distance returns the similarity distance of a row and whether one was present.
// Lexical (BM25) matches carry no distance; a JSON null counts as absent.
func (r Row) Distance() (float64, bool) {
	additional := r.Additional()
	if additional == nil {
		return 0, false
	}
	return toFloat64(additional["distance"])
}

// ID returns the object id of a row, or "" when absent.
func (r Row) ID() string {
	id, _ := r.Additional()["id"].(string)
	return id
}

// toFloat64 converts the numeric types decoders produce into float64.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
