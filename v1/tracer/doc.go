// Package tracer provides distributed tracing on top of OpenTelemetry.
//
// A [Tracer] owns an SDK TracerProvider, registers it and the W3C
// propagators globally, and optionally exports spans over OTLP/HTTP.
//
// Basic usage:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "algolia-weaviate"}, log)
//	if err != nil {
//	    return err
//	}
//	defer t.Shutdown(ctx)
//
//	ctx, span := t.StartSpan(ctx, "algolia.search")
//	defer span.End()
//	t.SetAttributes(span, map[string]interface{}{"algolia.index": "products"})
//
// [Tracer.Middleware] starts one server span per HTTP request and continues
// traces arriving in traceparent headers. *Tracer satisfies the
// algolia.SpanStarter interface.
//
// Configuration:
//
//	TRACER_ENABLE_EXPORT=true
//	TRACER_ENDPOINT=otel-collector:4318
//	TRACER_INSECURE=true
package tracer
