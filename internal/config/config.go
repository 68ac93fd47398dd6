// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package config loads and validates server configuration with Koanf v2.
// Precedence: environment variables > config file > built-in defaults.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the canvas server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Board    BoardConfig    `koanf:"board"`
	AI       AIConfig       `koanf:"ai"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BoardConfig controls the shared board state and per-connection behavior.
type BoardConfig struct {
	// SupplementLimit caps the supplement collection. The browser client
	// enforces the same cap before emitting, but the server is authoritative
	// under concurrent uploaders.
	SupplementLimit int `koanf:"supplement_limit"`

	// SendBuffer is the per-client outbound queue length. A client whose
	// queue is full is dropped rather than allowed to stall broadcasts.
	SendBuffer int `koanf:"send_buffer"`

	// MaxMessageSize bounds inbound WebSocket frames in bytes.
	MaxMessageSize int64 `koanf:"max_message_size"`

	// EventRate and EventBurst parameterize the per-client token bucket for
	// inbound events. Zero EventRate disables flood control.
	EventRate  float64 `koanf:"event_rate"`
	EventBurst int     `koanf:"event_burst"`
}

// AIConfig configures the external text-generation service (an Azure
// OpenAI-compatible chat-completions deployment).
type AIConfig struct {
	Endpoint   string        `koanf:"endpoint"`
	APIKey     string        `koanf:"api_key"`
	Deployment string        `koanf:"deployment"`
	APIVersion string        `koanf:"api_version"`
	Timeout    time.Duration `koanf:"timeout"`
}

// Enabled reports whether the generation service is configured. When false
// every suggestion request resolves to an error response immediately.
func (a AIConfig) Enabled() bool {
	return a.Endpoint != "" && a.APIKey != ""
}

// SecurityConfig controls CORS and HTTP rate limiting.
type SecurityConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks configuration invariants. It is called by LoadWithKoanf
// after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Board.SupplementLimit < 1 {
		return fmt.Errorf("board.supplement_limit must be positive, got %d", c.Board.SupplementLimit)
	}
	if c.Board.SendBuffer < 1 {
		return fmt.Errorf("board.send_buffer must be positive, got %d", c.Board.SendBuffer)
	}
	if c.Board.MaxMessageSize < 1024 {
		return fmt.Errorf("board.max_message_size must be at least 1024, got %d", c.Board.MaxMessageSize)
	}
	if c.Board.EventRate < 0 {
		return fmt.Errorf("board.event_rate must not be negative, got %f", c.Board.EventRate)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %s", c.AI.Timeout)
	}
	if c.AI.Endpoint != "" && c.AI.APIKey == "" {
		return fmt.Errorf("ai.api_key is required when ai.endpoint is set")
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	return nil
}
