package embedding

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/observability"
)

// Client computes query embeddings through an OpenAI-compatible
// /embeddings endpoint. It satisfies qdrant.Embedder.
type Client struct {
	api        *openai.Client
	model      openai.EmbeddingModel
	dimensions int
	observer   observability.Observer
}

// NewClient validates cfg and constructs a Client. No request is made.
func NewClient(cfg Config) (*Client, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:        openai.NewClientWithConfig(clientCfg),
		model:      openai.EmbeddingModel(cfg.Model),
		dimensions: cfg.Dimensions,
	}, nil
}

// WithObserver attaches an observer notified after every Embed call.
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// Embed returns one vector per text, in input order.
func (c *Client) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("embedding: no texts provided")
	}

	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          c.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if c.dimensions > 0 {
		req.Dimensions = c.dimensions
	}

	start := time.Now()
	resp, err := c.api.CreateEmbeddings(ctx, req)
	if err != nil {
		err = fmt.Errorf("embedding: request failed: %w", err)
		c.observe(time.Since(start), err, 0, len(texts))
		return nil, err
	}

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			err = fmt.Errorf("embedding: response index %d out of range", d.Index)
			c.observe(time.Since(start), err, 0, len(texts))
			return nil, err
		}
		out[d.Index] = d.Embedding
	}
	for i, v := range out {
		if len(v) == 0 {
			err = fmt.Errorf("embedding: no vector returned for input %d", i)
			c.observe(time.Since(start), err, 0, len(texts))
			return nil, err
		}
	}

	c.observe(time.Since(start), nil, int64(resp.Usage.TotalTokens), len(texts))
	return out, nil
}

// observe reports an Embed call. size is the token usage.
func (c *Client) observe(duration time.Duration, err error, tokens int64, texts int) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "embedding",
		Operation: "embed",
		Resource:  string(c.model),
		Duration:  duration,
		Error:     err,
		Size:      tokens,
		Metadata: map[string]interface{}{
			"texts": texts,
		},
	})
}
