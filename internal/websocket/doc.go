// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package websocket implements the synchronization hub and its per-client
// connection plumbing.
//
// # Architecture
//
// The Hub runs a single event-loop goroutine that exclusively owns the
// shared board state (presence, notes, supplements). Clients never touch
// that state directly: each connection's read pump forwards decoded events
// into the hub's inbound channel, and the loop processes one event to
// completion — mutate, compute payload, enqueue broadcasts — before taking
// the next. Two connections' mutations are therefore strictly ordered and
// never interleave mid-mutation, which is what makes the join snapshot
// exact: a connection that joins after M notes receives exactly those M
// notes in initialData and never a duplicate via a later noteAdded.
//
// The one operation that suspends is AI suggestion generation. The loop
// captures the supplement snapshot synchronously, then hands the slow
// external call to a goroutine which delivers the result to the requesting
// client only; board events keep flowing while generations are pending.
//
// # Connection lifecycle
//
//	Connected (anonymous) -> Joined (presence registered) -> Disconnected
//
// Mutation events from connections that have not joined are rejected with a
// boardError and do not touch shared state. Disconnect cancels the client's
// context, which aborts its in-flight suggestion requests.
//
// Broadcast delivery is fire-and-forget per client: a client whose send
// queue is full is dropped rather than allowed to stall the loop.
package websocket
