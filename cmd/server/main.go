// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package main is the entry point for the Canvasync server.
//
// Canvasync is a self-hosted real-time collaboration server for the Business
// Model Canvas. Participants connect over WebSocket, join a shared board,
// and see each other's sticky notes, supplementary material, and presence
// instantly. An optional AI integration generates per-section suggestions
// grounded in the uploaded supplementary material.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Suggestion broker: Azure OpenAI-compatible client behind a circuit
//     breaker, when AI credentials are configured
//  3. Synchronization hub: the single event loop owning all board state
//  4. HTTP server: WebSocket upgrade, board snapshot, health, AI probe,
//     and Prometheus metrics endpoints
//  5. Supervisor tree: suture supervisors restarting the hub and the HTTP
//     server independently
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config.yaml, built-in defaults.
//
// Common environment variables:
//   - PORT: HTTP listen port (default 3001)
//   - AZURE_OPENAI_ENDPOINT: AI deployment endpoint (optional)
//   - AZURE_OPENAI_API_KEY: AI API key (optional)
//   - AZURE_OPENAI_DEPLOYMENT_NAME: model deployment name (optional)
//   - CORS_ORIGINS: comma-separated allowed origins
//   - LOG_LEVEL: trace, debug, info, warn, error
//
// Without AI credentials the server runs fully functional; suggestion
// requests resolve to an error payload telling the user AI is not
// configured.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the hub closes
// all WebSocket clients, and the HTTP server drains in-flight requests
// with a 10 second timeout.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkeller0x/canvasync/internal/api"
	"github.com/mkeller0x/canvasync/internal/config"
	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/suggest"
	"github.com/mkeller0x/canvasync/internal/supervisor"
	"github.com/mkeller0x/canvasync/internal/supervisor/services"
	ws "github.com/mkeller0x/canvasync/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Default logger; configuration is not available yet.
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("ai_enabled", cfg.AI.Enabled()).
		Int("supplement_limit", cfg.Board.SupplementLimit).
		Msg("starting canvasync")

	// Suggestion broker. A nil generator keeps the broker answering with
	// a friendly error instead of calling out.
	var generator suggest.Generator
	if cfg.AI.Enabled() {
		generator = suggest.NewClient(cfg.AI)
		logging.Info().Str("deployment", cfg.AI.Deployment).Msg("AI suggestion client configured")
	} else {
		logging.Info().Msg("AI credentials not configured, suggestions disabled")
	}
	broker := suggest.NewBroker(generator, cfg.AI.Timeout)

	// The hub owns all board state; everything else talks to it through
	// channels.
	hub := ws.NewHub(cfg.Board, broker)

	handler := api.NewHandler(cfg, hub, broker, version)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
	))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Supervision: the hub and the HTTP server restart independently.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}
	tree.AddBoardService(services.NewHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("canvasync listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor tree exited with error")
		os.Exit(1)
	}

	logging.Info().Msg("canvasync stopped")
}
