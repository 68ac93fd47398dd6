// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package services

import (
	"context"
)

// ContextHub matches *websocket.Hub's RunWithContext method without
// importing the websocket package.
type ContextHub interface {
	RunWithContext(ctx context.Context) error
}

// HubService wraps the synchronization hub as a supervised service.
//
// The hub's RunWithContext method already follows the suture.Service
// contract, so this wrapper delegates to it and provides a name for
// logging. Restarting the service creates a fresh event loop over the
// same hub state.
type HubService struct {
	hub  ContextHub
	name string
}

// NewHubService creates a hub service wrapper.
func NewHubService(hub ContextHub) *HubService {
	return &HubService{
		hub:  hub,
		name: "board-hub",
	}
}

// Serve implements suture.Service. It returns ctx.Err() on normal shutdown
// after the hub has closed all clients.
func (s *HubService) Serve(ctx context.Context) error {
	return s.hub.RunWithContext(ctx)
}

// String implements fmt.Stringer; suture uses it to identify the service
// in log messages.
func (s *HubService) String() string {
	return s.name
}
