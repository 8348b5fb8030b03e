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

// Config holds configuration for smart-search ranker providers.
type Config struct {
	// RankerHost is the base URL for the ranking service API.
	// Example: "http://localhost:11434/v1" for a local OpenAI-compatible server
	RankerHost string

	// RankerModel is the model identifier used for query ranking.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	RankerModel string

	// Timeout bounds a single ranking call. The search engine degrades to
	// keyword mode when it elapses.
	// Default: 4s
	Timeout time.Duration

	// MaxCandidates caps how many candidate slugs are sent per request.
	// Default: 50
	MaxCandidates int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithRankerHost sets the ranking service host URL.
func WithRankerHost(host string) ConfigOption {
	return func(c *Config) {
		c.RankerHost = host
	}
}

// WithRankerModel sets the ranking model identifier.
func WithRankerModel(model string) ConfigOption {
	return func(c *Config) {
		c.RankerModel = model
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithMaxCandidates sets the candidate cap per request.
func WithMaxCandidates(max int) ConfigOption {
	return func(c *Config) {
		c.MaxCandidates = max
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		RankerHost:    "http://localhost:11434/v1",
		RankerModel:   "qwen2.5:3b",
		Timeout:       4 * time.Second,
		MaxCandidates: 50,
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to the host if missing, which is required by most
// OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.RankerHost != "" && !strings.HasSuffix(c.RankerHost, "/v1") {
		c.RankerHost = strings.TrimSuffix(c.RankerHost, "/")
		c.RankerHost = c.RankerHost + "/v1"
	}
	if c.Timeout <= 0 {
		c.Timeout = 4 * time.Second
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = 50
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.RankerHost == "" {
		return errors.New("ai config: RankerHost is required")
	}
	if c.RankerModel == "" {
		return errors.New("ai config: RankerModel is required")
	}
	return nil
}
