// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package websocket

import (
	"github.com/goccy/go-json"
)

// Message is the outbound WebSocket envelope.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// inboundMessage is the inbound envelope. Data stays raw until the hub
// dispatches on Type, so one malformed payload never fails the read pump.
type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// inboundEvent pairs a decoded envelope with its source connection for the
// hub's event loop.
type inboundEvent struct {
	client *Client
	msg    inboundMessage
}
