// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/canvasync/config.yaml",
	"/etc/canvasync/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults. Defaults are applied
// first, then overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Board: BoardConfig{
			SupplementLimit: 100,
			SendBuffer:      256,
			MaxMessageSize:  512 * 1024, // 512 KB
			EventRate:       50,         // events/second per connection
			EventBurst:      100,
		},
		AI: AIConfig{
			Endpoint:   "",
			APIKey:     "",
			Deployment: "",
			APIVersion: "2024-02-01",
			Timeout:    60 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive as strings from environment variables.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// legacyEnvMap maps environment variable names kept from the original
// deployment to koanf config paths.
var legacyEnvMap = map[string]string{
	"PORT":                         "server.port",
	"AZURE_OPENAI_ENDPOINT":        "ai.endpoint",
	"AZURE_OPENAI_API_KEY":         "ai.api_key",
	"AZURE_OPENAI_DEPLOYMENT_NAME": "ai.deployment",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - HTTP_PORT          -> server.port
//   - AI_API_KEY         -> ai.api_key
//   - BOARD_EVENT_RATE   -> board.event_rate
//   - LOG_LEVEL          -> logging.level
//   - CORS_ORIGINS       -> security.cors_origins
//   - AZURE_OPENAI_ENDPOINT -> ai.endpoint (legacy name)
func envTransformFunc(key string) string {
	if path, ok := legacyEnvMap[key]; ok {
		return path
	}

	lower := strings.ToLower(key)
	switch {
	case strings.HasPrefix(lower, "http_"):
		return "server." + strings.TrimPrefix(lower, "http_")
	case strings.HasPrefix(lower, "server_"):
		return "server." + strings.TrimPrefix(lower, "server_")
	case strings.HasPrefix(lower, "board_"):
		return "board." + strings.TrimPrefix(lower, "board_")
	case strings.HasPrefix(lower, "ai_"):
		return "ai." + strings.TrimPrefix(lower, "ai_")
	case strings.HasPrefix(lower, "log_"):
		return "logging." + strings.TrimPrefix(lower, "log_")
	case lower == "cors_origins":
		return "security.cors_origins"
	case strings.HasPrefix(lower, "rate_limit_"):
		return "security." + lower
	case lower == "environment":
		return "server.environment"
	}

	// Unknown variables are ignored rather than polluting the config tree.
	return ""
}
