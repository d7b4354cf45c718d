package algolia

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// FXModule provides the search Adapter to an Fx application.
//
// Dependencies required by this module:
//   - a vectordb.Store (e.g. from weaviate.FXModule)
//   - an algolia.Config
//
// Logger, SpanStarter, Recorder, Cache and EventPublisher are optional and
// wired when present.
//
// Usage:
//
//	app := fx.New(
//	    weaviate.FXModule,
//	    algolia.FXModule,
//	    fx.Provide(func() algolia.Config { return algolia.DefaultConfig("Product") }),
//	)
var FXModule = fx.Module("algolia",
	fx.Provide(NewAdapterWithParams),
)

// AdapterParams groups the dependencies of the Adapter.
type AdapterParams struct {
	fx.In

	Store   vectordb.Store
	Config  Config
	Logger  Logger         `optional:"true"`
	Tracer  SpanStarter    `optional:"true"`
	Metrics Recorder       `optional:"true"`
	Cache   Cache          `optional:"true"`
	Events  EventPublisher `optional:"true"`
}

// NewAdapterWithParams builds an Adapter from Fx-injected dependencies.
func NewAdapterWithParams(p AdapterParams) (*Adapter, error) {
	adapter, err := NewAdapter(p.Store, p.Config)
	if err != nil {
		return nil, err
	}
	return adapter.
		WithLogger(p.Logger).
		WithTracer(p.Tracer).
		WithMetrics(p.Metrics).
		WithCache(p.Cache).
		WithEvents(p.Events), nil
}
