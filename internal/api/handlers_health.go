// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package api

import (
	"net/http"
	"time"

	"github.com/mkeller0x/canvasync/internal/models"
)

// Health reports overall server health: uptime, connected clients, and
// whether AI suggestions are configured.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connections := 0
	if h.hub != nil {
		connections = h.hub.GetClientCount()
	}

	respondData(w, http.StatusOK, models.HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		UptimeSecs:  int64(time.Since(h.startTime).Seconds()),
		Connections: connections,
		AIEnabled:   h.broker != nil && h.broker.Enabled(),
	})
}

// HealthLive is the liveness probe: the process is up and serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe. The server is ready once the hub's
// event loop is accepting connections.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "synchronization hub not running", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"})
}
