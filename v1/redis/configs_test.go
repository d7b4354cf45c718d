package redis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTTL, cfg.TTL)
	assert.Equal(t, DefaultKeyPrefix, cfg.KeyPrefix)
	assert.Equal(t, "localhost:6379", cfg.addr())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"negative ttl", func(c *Config) { c.TTL = -time.Second }},
		{"negative db", func(c *Config) { c.DB = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	client, err := NewClient(Config{Host: "cache.internal", TTL: time.Minute})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, "cache.internal:6379", client.cfg.addr())
	assert.Equal(t, time.Minute, client.cfg.TTL)
	assert.Equal(t, DefaultKeyPrefix, client.cfg.KeyPrefix)
	assert.Equal(t, DefaultKeyPrefix+"abc", client.key("abc"))
}

func TestNewClient_BadTLSFiles(t *testing.T) {
	_, err := NewClient(Config{
		TLS: TLSConfig{Enabled: true, CACertPath: "/nonexistent/ca.pem"},
	})
	assert.Error(t, err)
}

func TestClose_Idempotent(t *testing.T) {
	client, err := NewClient(DefaultConfig())
	require.NoError(t, err)

	assert.NoError(t, client.Close())
	assert.NoError(t, client.Close())
}
