// Package observability defines the hook through which store clients report
// completed operations to metrics or tracing backends.
//
// Clients accept an [Observer] via WithObserver and call it after every
// operation; a nil observer disables reporting:
//
//	client, err := weaviate.NewWeaviateClient(cfg)
//	if err != nil {
//	    return err
//	}
//	client.WithObserver(metricsInstance)
package observability
