package observability

import "time"

// Observer receives a notification after every store operation.
// Implementations must be safe for concurrent use and should return quickly;
// they run on the caller's goroutine.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the emitting client, e.g. "weaviate" or "qdrant"
	Component string

	// Operation is the verb, e.g. "get" or "count"
	Operation string

	// Resource is the class or collection the operation targeted
	Resource string

	// SubResource carries extra detail such as the search mode
	SubResource string

	Duration time.Duration

	// Error is nil on success
	Error error

	// Size is the number of rows returned, or the count for aggregates
	Size int64

	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) { f(ctx) }
