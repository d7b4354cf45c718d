// Package embedding computes text embeddings through an OpenAI-compatible
// inference service.
//
// Weaviate vectorizes nearText concepts itself. Qdrant cannot, so when the
// adapter serves a Qdrant collection this client turns the concepts into a
// query vector with the same model the collection was indexed with.
//
// # Usage
//
//	client, err := embedding.NewClient(embedding.Config{
//	    BaseURL: "http://inference:8000/v1",
//	    Model:   "text-embedding-3-small",
//	})
//	if err != nil {
//	    return err
//	}
//	vectors, err := client.Embed(ctx, "running shoes")
//
// # Fx Integration
//
//	app := fx.New(
//	    embedding.FXModule,
//	    fx.Supply(embedding.Config{BaseURL: url, Model: model}),
//	    fx.Provide(fx.Annotate(
//	        func(c *embedding.Client) *embedding.Client { return c },
//	        fx.As(new(qdrant.Embedder)),
//	    )),
//	)
package embedding
