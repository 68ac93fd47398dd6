// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("default port = %d, want 3001", cfg.Server.Port)
	}
	if cfg.Board.SupplementLimit != 100 {
		t.Errorf("default supplement limit = %d, want 100", cfg.Board.SupplementLimit)
	}
	if cfg.AI.Enabled() {
		t.Error("AI should be disabled without endpoint and key")
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("default ai timeout = %s, want 60s", cfg.AI.Timeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("AI_ENDPOINT", "https://example.openai.azure.com/")
	t.Setenv("AI_API_KEY", "secret")
	t.Setenv("AI_DEPLOYMENT", "gpt-4o")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BOARD_SUPPLEMENT_LIMIT", "50")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://canvas.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if !cfg.AI.Enabled() {
		t.Error("AI should be enabled")
	}
	if cfg.AI.Deployment != "gpt-4o" {
		t.Errorf("deployment = %q", cfg.AI.Deployment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Board.SupplementLimit != 50 {
		t.Errorf("supplement limit = %d, want 50", cfg.Board.SupplementLimit)
	}
	want := []string{"http://localhost:3000", "https://canvas.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("cors origins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("cors origin %d = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}

func TestLegacyEnvNames(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://legacy.openai.azure.com/")
	t.Setenv("AZURE_OPENAI_API_KEY", "legacy-key")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-35-turbo")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Server.Port)
	}
	if cfg.AI.Endpoint != "https://legacy.openai.azure.com/" {
		t.Errorf("endpoint = %q", cfg.AI.Endpoint)
	}
	if cfg.AI.Deployment != "gpt-35-turbo" {
		t.Errorf("deployment = %q", cfg.AI.Deployment)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 9001\nboard:\n  supplement_limit: 25\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("port = %d, want 9001", cfg.Server.Port)
	}
	if cfg.Board.SupplementLimit != 25 {
		t.Errorf("supplement limit = %d, want 25", cfg.Board.SupplementLimit)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9002")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf: %v", err)
	}
	if cfg.Server.Port != 9002 {
		t.Errorf("port = %d, want 9002 (env should win over file)", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero supplement limit", func(c *Config) { c.Board.SupplementLimit = 0 }, true},
		{"zero send buffer", func(c *Config) { c.Board.SendBuffer = 0 }, true},
		{"tiny message size", func(c *Config) { c.Board.MaxMessageSize = 100 }, true},
		{"negative event rate", func(c *Config) { c.Board.EventRate = -1 }, true},
		{"zero ai timeout", func(c *Config) { c.AI.Timeout = 0 }, true},
		{"endpoint without key", func(c *Config) { c.AI.Endpoint = "https://x" }, true},
		{"endpoint with key", func(c *Config) { c.AI.Endpoint = "https://x"; c.AI.APIKey = "k" }, false},
		{"bad environment", func(c *Config) { c.Server.Environment = "staging" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"BOARD_EVENT_RATE", "board.event_rate"},
		{"AI_API_KEY", "ai.api_key"},
		{"LOG_FORMAT", "logging.format"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_requests"},
		{"ENVIRONMENT", "server.environment"},
		{"AZURE_OPENAI_ENDPOINT", "ai.endpoint"},
		{"RANDOM_VAR", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := envTransformFunc(tt.in); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
