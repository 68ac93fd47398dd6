// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package websocket

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/metrics"
	"github.com/mkeller0x/canvasync/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is the middleman between one websocket connection and the hub.
//
// The id is the opaque connection identifier assigned at upgrade time; it
// keys the presence registry and gives broadcasts a deterministic order.
// The joined flag and participant field are owned by the hub's event loop
// and must not be touched elsewhere.
type Client struct {
	id      string
	hub     *Hub
	conn    *websocket.Conn
	send    chan Message
	limiter *rate.Limiter

	// ctx is canceled when the connection unregisters; in-flight suggestion
	// requests for this client derive from it.
	ctx    context.Context
	cancel context.CancelFunc

	// Hub-loop-owned connection state.
	joined      bool
	participant models.Participant
}

// NewClient creates a client for an upgraded connection.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	var limiter *rate.Limiter
	if hub.cfg.EventRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(hub.cfg.EventRate), hub.cfg.EventBurst)
	}

	return &Client{
		id:      uuid.NewString(),
		hub:     hub,
		conn:    conn,
		send:    make(chan Message, hub.cfg.SendBuffer),
		limiter: limiter,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// ID returns the opaque connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Start begins reading and writing for the client.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// trySend queues a message without blocking. A full queue drops the message;
// the write pump's failure handling will catch up with a client that slow.
// Safe from any goroutine: the send channel is never closed, the write pump
// exits via context cancellation instead.
func (c *Client) trySend(msg Message) {
	select {
	case <-c.ctx.Done():
		return
	default:
	}
	select {
	case c.send <- msg:
	default:
	}
}

// readPump pumps messages from the websocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.cfg.MaxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logging.Error().Err(err).Msg("failed to set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Error().Err(err).Str("conn", c.id).Msg("unexpected websocket close error")
			}
			break
		}

		// Keepalive is answered here; it never enters the event loop.
		if msg.Type == models.EventPing {
			c.trySend(Message{Type: models.EventPong})
			continue
		}

		if c.limiter != nil && !c.limiter.Allow() {
			metrics.RecordBoardEvent(msg.Type, "rejected")
			c.trySend(Message{Type: models.EventBoardError, Data: models.BoardErrorPayload{
				Code:    models.ErrCodeRateLimited,
				Message: "too many events, slow down",
			}})
			continue
		}

		// Blocking send keeps this connection's events in order and applies
		// backpressure when the hub is busy.
		select {
		case c.hub.inbound <- inboundEvent{client: c, msg: msg}:
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			// The hub released this client. Tell the peer before closing.
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
				logging.Debug().Err(err).Msg("failed to write close message")
			}
			return

		case message := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline")
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				logging.Error().Err(err).Msg("failed to write JSON message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logging.Error().Err(err).Msg("failed to set write deadline for ping")
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
