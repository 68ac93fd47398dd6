// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mkeller0x/canvasync/internal/models"
)

// Board returns a consistent point-in-time snapshot of the full board:
// participants, notes, and supplements. Read-only; mutation happens over
// the WebSocket connection.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "synchronization hub not running", nil)
		return
	}

	snapshot, err := h.hub.Snapshot(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "SNAPSHOT_FAILED", "could not read board state", err)
		return
	}

	respondData(w, http.StatusOK, snapshot)
}

// testAIRequest is the optional body of the AI probe endpoint.
type testAIRequest struct {
	Section models.Section `json:"section"`
}

// TestAI probes the configured AI deployment with a minimal request so
// operators can verify credentials and connectivity without joining a board.
func (h *Handler) TestAI(w http.ResponseWriter, r *http.Request) {
	if h.broker == nil || !h.broker.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "AI_DISABLED", "AI suggestions are not configured", nil)
		return
	}

	req := testAIRequest{Section: models.SectionValuePropositions}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body must be JSON", err)
			return
		}
	}
	if !req.Section.Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_SECTION", "unknown canvas section", nil)
		return
	}

	payload := h.broker.Generate(r.Context(), req.Section, "")
	if payload.Error != "" {
		respondError(w, http.StatusBadGateway, "AI_ERROR", payload.Error, nil)
		return
	}

	respondData(w, http.StatusOK, payload)
}
