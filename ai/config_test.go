package ai

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, "qwen2.5:3b", cfg.Model)
	assert.Equal(t, "response", cfg.ResponseField)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434", cfg.Host)
		assert.Equal(t, "response", cfg.ResponseField)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080"))
		assert.Equal(t, "http://custom:8080", cfg.Host)
	})

	t.Run("with custom model", func(t *testing.T) {
		cfg := NewConfig(WithModel("llama3.2"))
		assert.Equal(t, "llama3.2", cfg.Model)
	})

	t.Run("with custom response field", func(t *testing.T) {
		cfg := NewConfig(WithResponseField("text"))
		assert.Equal(t, "text", cfg.ResponseField)
	})

	t.Run("with custom timeout", func(t *testing.T) {
		cfg := NewConfig(WithTimeout(10 * time.Second))
		assert.Equal(t, 10*time.Second, cfg.Timeout)
	})

	t.Run("with provider", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderOpenAI))
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
	})
}

func TestConfig_Normalize(t *testing.T) {
	t.Run("strips trailing slash", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434/"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434", cfg.Host)
	})

	t.Run("adds v1 suffix for openai provider", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderOpenAI), WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("keeps existing v1 suffix", func(t *testing.T) {
		cfg := NewConfig(WithProvider(ProviderOpenAI), WithHost("http://localhost:11434/v1"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("ollama host untouched", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://localhost:11434"))
		cfg.Normalize()
		assert.Equal(t, "http://localhost:11434", cfg.Host)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default", func(c *Config) {}, false},
		{"valid openai", func(c *Config) { c.Provider = ProviderOpenAI }, false},
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }, true},
		{"empty host", func(c *Config) { c.Host = "" }, true},
		{"empty model", func(c *Config) { c.Model = "" }, true},
		{"empty response field", func(c *Config) { c.ResponseField = "" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceError(t *testing.T) {
	err := &ServiceError{Status: 503}

	assert.Contains(t, err.Error(), "503")
	assert.ErrorIs(t, err, ErrService)
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"unavailable", ErrServiceUnavailable, "service_unavailable"},
		{"wrapped unavailable", errors.Join(errors.New("ctx"), ErrServiceUnavailable), "service_unavailable"},
		{"service error", &ServiceError{Status: 500}, "service_error"},
		{"malformed stream", ErrMalformedStreamChunk, "malformed_stream"},
		{"anything else", errors.New("boom"), "model_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ErrorKind(tt.err))
		})
	}
}
