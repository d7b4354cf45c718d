package logger

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Every method takes a message, an optional error and any number of field
// maps. Later maps win on duplicate keys; fields are emitted in key order.
//
//	log.Info("Search completed", nil, map[string]interface{}{
//	    "index":   "products",
//	    "nb_hits": 20,
//	})

// Debug logs at debug level.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.DebugLevel, msg, err, fields)
}

// Info logs at info level.
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.InfoLevel, msg, err, fields)
}

// Warn logs at warn level.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.WarnLevel, msg, err, fields)
}

// Error logs at error level.
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs at fatal level and exits the process with status 1.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug plus the trace ids of ctx.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.DebugLevel, msg, err, append(fields, l.traceFields(ctx)))
}

// InfoWithContext is Info plus the trace ids of ctx.
//
//	ctx, span := tr.StartSpan(ctx, "algolia.search")
//	defer span.End()
//	log.InfoWithContext(ctx, "Processing batch", nil, map[string]interface{}{"requests": 3})
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.InfoLevel, msg, err, append(fields, l.traceFields(ctx)))
}

// WarnWithContext is Warn plus the trace ids of ctx.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.WarnLevel, msg, err, append(fields, l.traceFields(ctx)))
}

// ErrorWithContext is Error plus the trace ids of ctx.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(zapcore.ErrorLevel, msg, err, append(fields, l.traceFields(ctx)))
}

// write skips field conversion entirely when level is disabled.
func (l *LoggerClient) write(level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(zapFields(err, fields)...)
}

func zapFields(err error, fields []map[string]interface{}) []zap.Field {
	merged := make(map[string]interface{})
	for _, m := range fields {
		for k, v := range m {
			merged[k] = v
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys)+1)
	if err != nil {
		out = append(out, zap.Error(err))
	}
	for _, k := range keys {
		out = append(out, zap.Any(k, merged[k]))
	}
	return out
}

// traceFields returns trace_id and span_id of the span in ctx, or nil when
// tracing is disabled or ctx carries no valid span.
func (l *LoggerClient) traceFields(ctx context.Context) map[string]interface{} {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return map[string]interface{}{
		"trace_id": sc.TraceID().String(),
		"span_id":  sc.SpanID().String(),
	}
}
