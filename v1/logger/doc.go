// Package logger provides structured logging on top of zap.
//
// # Architecture
//
// NewLoggerClient returns the concrete *LoggerClient; FXModule provides it
// both as itself and as the Logger interface.
//
// The weaviate, qdrant and algolia packages each declare a narrower Logger
// interface of their own; *LoggerClient satisfies all of them.
//
// # Direct Usage (Without FX)
//
//	log, err := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		ServiceName:   "algolia-weaviate",
//		EnableTracing: true,
//	})
//	if err != nil {
//		return err
//	}
//
//	log.Info("Listening", nil, map[string]interface{}{
//		"addr": ":8080",
//	})
//
//	// Adds trace_id and span_id when ctx carries a span
//	log.InfoWithContext(ctx, "Processing batch", nil, map[string]interface{}{
//		"requests": 3,
//	})
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule, // Provides *LoggerClient and logger.Logger
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: "info", ServiceName: "algolia-weaviate"}
//		}),
//	)
//
// # Output
//
// Entries are JSON (or console text with Encoding "console") on stderr with an ISO8601 "timestamp", a capitalized
// "level", the caller, and the initial fields "pid" and "service".
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	ZAP_LOGGER_ENCODING=console     # json (default) or console
//	LOGGER_ENABLE_TRACING=true      # add trace ids in *WithContext methods
//
// # Thread Safety
//
// All methods on the Logger interface are safe for concurrent use by multiple
// goroutines.
package logger
