package weaviate

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config holds connection settings for the Weaviate client.
//
// Example (programmatic):
//
//	cfg := weaviate.DefaultConfig()
//	cfg.URL = "https://my-cluster.weaviate.network"
//	cfg.APIKey = os.Getenv("WEAVIATE_API_KEY")
//
// Example (builder style):
//
//	cfg := weaviate.FromURL("http://localhost:8080").
//	    WithAPIKey(os.Getenv("WEAVIATE_API_KEY")).
//	    WithTimeout(10 * time.Second)
type Config struct {
	// Base URL of the Weaviate server, e.g. "http://localhost:8080".
	// Scheme and host (with port) are taken from it; any path is ignored.
	URL string `yaml:"url" envconfig:"WEAVIATE_URL"`

	// Optional API key for secured deployments (Weaviate Cloud).
	APIKey string `yaml:"api_key" envconfig:"WEAVIATE_API_KEY"`

	// Maximum duration of a single query.
	Timeout time.Duration `yaml:"timeout" envconfig:"WEAVIATE_TIMEOUT"`

	// Maximum duration of the startup liveness check.
	StartupTimeout time.Duration `yaml:"startup_timeout" envconfig:"WEAVIATE_STARTUP_TIMEOUT"`

	// Extra headers sent with every request, e.g. "X-OpenAI-Api-Key" for
	// vectorizer modules.
	Headers map[string]string `yaml:"headers"`

	// Skip the liveness check in NewWeaviateClient.
	SkipHealthCheck bool `yaml:"skip_health_check" envconfig:"WEAVIATE_SKIP_HEALTH_CHECK"`
}

// DefaultConfig provides sensible defaults for a local Weaviate.
func DefaultConfig() *Config {
	return &Config{
		URL:            "http://localhost:8080",
		Timeout:        10 * time.Second,
		StartupTimeout: 5 * time.Second,
	}
}

// FromURL returns a default config pre-filled with a specific URL.
func FromURL(u string) *Config {
	cfg := DefaultConfig()
	cfg.URL = u
	return cfg
}

func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithStartupTimeout(d time.Duration) *Config {
	c.StartupTimeout = d
	return c
}

// WithHeader adds one request header.
func (c *Config) WithHeader(key, value string) *Config {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[key] = value
	return c
}

// endpoint splits URL into the scheme and host the client expects.
// A bare "host:port" is treated as http.
func (c *Config) endpoint() (scheme, host string, err error) {
	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		return "", "", fmt.Errorf("[Weaviate] url is required")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("[Weaviate] invalid url %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", fmt.Errorf("[Weaviate] unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("[Weaviate] url %q has no host", c.URL)
	}
	return u.Scheme, u.Host, nil
}

// Validate checks that the URL is usable and the timeouts are not negative.
func (c *Config) Validate() error {
	if _, _, err := c.endpoint(); err != nil {
		return err
	}
	if c.Timeout < 0 || c.StartupTimeout < 0 {
		return fmt.Errorf("[Weaviate] timeouts must not be negative")
	}
	return nil
}
