// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package metrics exposes Prometheus instrumentation for the canvas server.
//
// Metrics are registered with promauto at package load time and served by the
// /metrics endpoint. Helper functions (RecordBoardEvent, RecordSuggestion,
// RecordAPIRequest) keep label usage consistent across callers.
package metrics
