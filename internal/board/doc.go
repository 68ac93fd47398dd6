// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package board holds the shared canvas state: the presence registry, the
// note store, and the supplement store.
//
// None of the types here are safe for concurrent use on their own. They are
// owned exclusively by the hub's event-loop goroutine, which is the single
// writer and reader; that ownership is what makes mutate-then-broadcast an
// atomic step without any locking. Snapshot methods return copies so that
// captured state is immune to later mutation.
package board
