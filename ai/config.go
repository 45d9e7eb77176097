// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"strings"
	"time"
)

// Provider identifiers for the summarization backends.
const (
	// ProviderOllama is the native streaming endpoint (newline-delimited
	// JSON over /api/generate).
	ProviderOllama = "ollama"

	// ProviderOpenAI is an OpenAI-compatible chat completion endpoint.
	ProviderOpenAI = "openai"
)

// Config holds configuration for AI service providers.
type Config struct {
	// Provider selects the summarization backend: ProviderOllama or
	// ProviderOpenAI.
	Provider string

	// Host is the base URL of the service.
	// Example: "http://localhost:11434" for a local Ollama server.
	Host string

	// Model is the model identifier to use for summarization.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	Model string

	// ResponseField is the JSON field carrying partial text tokens in the
	// streamed response. Only used by the ollama provider.
	// Default: "response"
	ResponseField string

	// Timeout bounds a single summarization call, including the full
	// stream read. Default: 2 minutes.
	Timeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider selects the summarization backend.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithResponseField sets the streamed token field name.
func WithResponseField(field string) ConfigOption {
	return func(c *Config) {
		c.ResponseField = field
	}
}

// WithTimeout sets the per-call timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// DefaultConfig returns a Config with sensible defaults for a local Ollama
// server.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderOllama,
		Host:          "http://localhost:11434",
		Model:         "qwen2.5:3b",
		ResponseField: "response",
		Timeout:       2 * time.Minute,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options. This is the recommended way to create a Config with
// custom settings.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithHost("http://localhost:11434"),
//	    ai.WithModel("llama3.2"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Trailing slashes are stripped from the host, and for the openai provider
// the /v1 suffix required by OpenAI-compatible APIs is added if missing.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(c.Host, "/")
	if c.Provider == ProviderOpenAI && c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = c.Host + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Provider != ProviderOllama && c.Provider != ProviderOpenAI {
		return errors.New("ai config: Provider must be \"ollama\" or \"openai\"")
	}
	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.ResponseField == "" {
		return errors.New("ai config: ResponseField is required")
	}
	if c.Timeout <= 0 {
		return errors.New("ai config: Timeout must be positive")
	}
	return nil
}
