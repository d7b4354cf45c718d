package algolia

import (
	"errors"
	"fmt"
)

// Config holds the adapter settings that are not part of a search request.
type Config struct {
	// ClassName is the Weaviate class (or Qdrant collection) searched when a
	// request names no index, or an index missing from IndexClasses.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "class_name" key
	//   - Environment variable ALGOLIA_CLASS_NAME
	ClassName string `yaml:"class_name" envconfig:"ALGOLIA_CLASS_NAME"`

	// IndexClasses maps Algolia index names to class names, so one adapter
	// can serve several InstantSearch indices.
	//
	// Example:
	//   IndexClasses: {"products": "Product", "products_price_asc": "Product"}
	IndexClasses map[string]string `yaml:"index_classes"`

	// Fields is the selection set fetched for every hit. Empty means
	// DefaultFields. Include "_additional { id distance }" to get scores.
	Fields []string `yaml:"fields"`

	// MaxConcurrentRequests caps how many requests of one batch run at the
	// same time. 0 means no limit.
	//
	// This setting can be configured via:
	//   - YAML configuration with the "max_concurrent_requests" key
	//   - Environment variable ALGOLIA_MAX_CONCURRENT_REQUESTS
	MaxConcurrentRequests int `yaml:"max_concurrent_requests" envconfig:"ALGOLIA_MAX_CONCURRENT_REQUESTS"`
}

// DefaultConfig returns a Config searching className with the default fields.
func DefaultConfig(className string) Config {
	return Config{
		ClassName: className,
		Fields:    append([]string(nil), DefaultFields...),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.ClassName == "" {
		return errors.New("class name is required")
	}
	for index, class := range c.IndexClasses {
		if class == "" {
			return fmt.Errorf("index %q maps to an empty class name", index)
		}
	}
	if c.MaxConcurrentRequests < 0 {
		return fmt.Errorf("max concurrent requests must not be negative, got %d", c.MaxConcurrentRequests)
	}
	return nil
}

// classFor resolves the class searched for an Algolia index name.
func (c Config) classFor(indexName string) string {
	if class, ok := c.IndexClasses[indexName]; ok {
		return class
	}
	return c.ClassName
}
