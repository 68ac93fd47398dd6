// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package models defines the shared data types of the canvas server: the
// board entities (participants, notes, supplements), the nine canvas
// sections, the WebSocket event vocabulary exchanged with browser clients,
// and the JSON envelope used by the REST endpoints.
//
// All types are plain data carriers with goccy/go-json-compatible struct
// tags. They hold no behavior beyond validation helpers so that every other
// package can depend on them without import cycles.
package models
