package qdrant

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Embedder turns text into vectors of the collection's embedding space.
// *embedding.Client satisfies it.
type Embedder interface {
	Embed(ctx context.Context, texts ...string) ([][]float32, error)
}

// WithEmbedder enables nearText queries. Without one they fail with
// vectordb.ErrUnsupportedQuery.
func (c *QdrantClient) WithEmbedder(e Embedder) *QdrantClient {
	c.embedder = e
	return c
}

// nearTextVector embeds the concepts of nt and averages them into one
// query vector, as Weaviate does for several concepts.
func (c *QdrantClient) nearTextVector(ctx context.Context, nt *vectordb.NearText) ([]float32, error) {
	if nt.MoveTo != nil || nt.MoveAwayFrom != nil {
		return nil, fmt.Errorf("%w: nearText moveTo/moveAwayFrom", vectordb.ErrUnsupportedQuery)
	}
	if len(nt.Concepts) == 0 {
		return nil, fmt.Errorf("%w: nearText without concepts", vectordb.ErrUnsupportedQuery)
	}

	vectors, err := c.embedder.Embed(ctx, nt.Concepts...)
	if err != nil {
		return nil, err
	}
	return meanVector(vectors)
}

// meanVector returns the element-wise mean of vectors, which must share
// one dimension.
func meanVector(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to combine")
	}
	dim := len(vectors[0])
	mean := make([]float32, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dimension %d, want %d", i, len(v), dim)
		}
		for j, x := range v {
			mean[j] += x
		}
	}
	n := float32(len(vectors))
	for j := range mean {
		mean[j] /= n
	}
	return mean, nil
}
