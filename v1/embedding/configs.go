package embedding

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultTimeout bounds a single embedding request.
const DefaultTimeout = 10 * time.Second

// Config points the client at an OpenAI-compatible inference service.
type Config struct {
	// BaseURL is the API root without "/embeddings", e.g.
	// "https://api.openai.com/v1" or "http://inference:8000/v1"
	BaseURL string `yaml:"base_url" envconfig:"EMBEDDING_BASE_URL"`

	// APIKey is sent as a bearer token
	APIKey string `yaml:"api_key" envconfig:"EMBEDDING_API_KEY"`

	// Model must be the model the collection was embedded with
	Model string `yaml:"model" envconfig:"EMBEDDING_MODEL"`

	// Dimensions truncates vectors for models that support it; 0 keeps the
	// model's native size
	Dimensions int `yaml:"dimensions" envconfig:"EMBEDDING_DIMENSIONS"`

	// Timeout bounds a single request
	// Default: 10 seconds
	Timeout time.Duration `yaml:"timeout" envconfig:"EMBEDDING_TIMEOUT"`
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("embedding: base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("embedding: base_url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: model is required")
	}
	if c.Dimensions < 0 {
		return fmt.Errorf("embedding: dimensions must not be negative")
	}
	return nil
}
