// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mkeller0x/canvasync/internal/config"
	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/suggest"
	ws "github.com/mkeller0x/canvasync/internal/websocket"
)

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, WebSocket upgrade (this file)
//   - handlers_helpers.go: Shared response helpers
//   - handlers_health.go: Health endpoints
//   - handlers_board.go: Board snapshot and AI probe endpoints
type Handler struct {
	config    *config.Config
	hub       *ws.Hub
	broker    *suggest.Broker
	version   string
	startTime time.Time
}

// NewHandler creates the API handler. The hub may be nil in tests that only
// exercise REST endpoints; the WebSocket endpoint then responds 503.
func NewHandler(cfg *config.Config, hub *ws.Hub, broker *suggest.Broker, version string) *Handler {
	return &Handler{
		config:    cfg,
		hub:       hub,
		broker:    broker,
		version:   version,
		startTime: time.Now(),
	}
}

// WebSocket upgrades the connection and hands it to the hub.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		logging.Warn().Msg("websocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("websocket upgrade error")
		return
	}

	client := ws.NewClient(h.hub, conn)
	h.hub.Register <- client
	client.Start()
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow clients.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Non-browser clients (scripts, native apps) omit Origin; browsers always
	// send it. Browser connections are held to the CORS allow list.
	if origin == "" {
		return true
	}

	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("websocket connection rejected from unauthorized origin")
	return false
}
