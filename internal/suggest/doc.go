// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

// Package suggest generates AI recommendations for canvas sections.
//
// The package has three layers:
//
//   - prompts.go: the fixed system persona and the nine per-section
//     instruction templates, plus prompt assembly from a supplement
//     snapshot.
//   - client.go: a thin HTTP client for an Azure OpenAI-compatible
//     chat-completions deployment.
//   - broker.go: the suggestion broker that validates sections, assembles
//     prompts, invokes the client behind a circuit breaker, and maps every
//     failure to an error string for the requesting client.
//
// The broker never returns a Go error to the hub: every outcome, including
// misconfiguration and open-breaker rejections, becomes a SuggestionPayload
// so the requesting client's loading indicator always resolves.
package suggest
