// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package api provides the HTTP surface of Canvasync: the WebSocket upgrade
// endpoint, board snapshot and health endpoints, an AI connectivity probe,
// and the Chi router that wires them together with CORS, rate limiting, and
// Prometheus instrumentation.
package api
