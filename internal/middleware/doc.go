// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package middleware provides HTTP middleware shared by the REST routes:
// request ID propagation, Prometheus instrumentation, and gzip response
// compression.
package middleware
