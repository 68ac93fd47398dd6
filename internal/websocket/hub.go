// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package websocket

import (
	"context"
	"sort"
	"sync/atomic"

	"github.com/goccy/go-json"

	"github.com/mkeller0x/canvasync/internal/board"
	"github.com/mkeller0x/canvasync/internal/config"
	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/metrics"
	"github.com/mkeller0x/canvasync/internal/models"
	"github.com/mkeller0x/canvasync/internal/suggest"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled indicates the parent context was
	// canceled, the normal graceful shutdown path (e.g. SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was
	// exceeded, which may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Hub is the synchronization hub: it maintains the set of active clients,
// exclusively owns the shared board state, and fans out state changes.
//
// All state mutation happens inside the event loop (RunWithContext), one
// event at a time. Register/Unregister are exported for the connection
// handler; everything else flows through the inbound channel.
type Hub struct {
	cfg    config.BoardConfig
	broker *suggest.Broker

	Register   chan *Client
	Unregister chan *Client
	inbound    chan inboundEvent
	snapshots  chan chan models.BoardSnapshot

	// Loop-owned state. Never touched outside the event loop.
	clients     map[*Client]bool
	presence    *board.Presence
	notes       *board.NoteStore
	supplements *board.SupplementStore

	clientCount atomic.Int64
}

// NewHub creates a hub with empty board state.
func NewHub(cfg config.BoardConfig, broker *suggest.Broker) *Hub {
	return &Hub{
		cfg:         cfg,
		broker:      broker,
		Register:    make(chan *Client),
		Unregister:  make(chan *Client),
		inbound:     make(chan inboundEvent, 64),
		snapshots:   make(chan chan models.BoardSnapshot),
		clients:     make(map[*Client]bool),
		presence:    board.NewPresence(),
		notes:       board.NewNoteStore(),
		supplements: board.NewSupplementStore(cfg.SupplementLimit),
	}
}

// Run starts the hub and blocks forever. Prefer RunWithContext for
// supervised operation.
func (h *Hub) Run() {
	_ = h.RunWithContext(context.Background())
}

// RunWithContext runs the event loop until the context is canceled, then
// closes all clients and returns ctx.Err(). Designed for suture
// supervision.
//
// Selection is priority-based so behavior stays predictable when several
// channels are ready at once:
//   - Priority 1: context cancellation (shutdown)
//   - Priority 2: client lifecycle events (Register/Unregister)
//   - Priority 3: board events and snapshot queries
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: shutdown (non-blocking check).
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: lifecycle events (non-blocking check).
		select {
		case client := <-h.Register:
			h.handleRegister(client)
			continue
		case client := <-h.Unregister:
			h.handleUnregister(client)
			continue
		default:
		}

		// Priority 3: wait for any event (blocking).
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.handleRegister(client)

		case client := <-h.Unregister:
			h.handleUnregister(client)

		case ev := <-h.inbound:
			h.handleEvent(ev)

		case reply := <-h.snapshots:
			reply <- models.BoardSnapshot{
				Users:       h.presence.List(),
				Notes:       h.notes.All(),
				Supplements: h.supplements.All(),
			}
		}
	}
}

// Snapshot returns a consistent point-in-time copy of the full board state,
// captured by the event loop between events. Used by the REST layer.
func (h *Hub) Snapshot(ctx context.Context) (models.BoardSnapshot, error) {
	reply := make(chan models.BoardSnapshot, 1)
	select {
	case h.snapshots <- reply:
	case <-ctx.Done():
		return models.BoardSnapshot{}, ctx.Err()
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-ctx.Done():
		return models.BoardSnapshot{}, ctx.Err()
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	return int(h.clientCount.Load())
}

func (h *Hub) handleRegister(c *Client) {
	h.clients[c] = true
	h.clientCount.Store(int64(len(h.clients)))
	metrics.ActiveConnections.Set(float64(len(h.clients)))
	logging.Info().Str("conn", c.id).Int("total_clients", len(h.clients)).Msg("websocket client connected")
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.cancel()
	h.clientCount.Store(int64(len(h.clients)))
	metrics.ActiveConnections.Set(float64(len(h.clients)))

	if c.joined {
		h.presence.Leave(c.id)
		metrics.JoinedParticipants.Set(float64(h.presence.Len()))
		h.broadcast(models.EventUserList, models.UserListPayload{Users: h.presence.List()})
	}
	logging.Info().Str("conn", c.id).Int("total_clients", len(h.clients)).Msg("websocket client disconnected")
}

// handleEvent routes one inbound event. The whole method runs inside the
// event loop, so mutate-then-broadcast is atomic with respect to every
// other connection's events.
func (h *Hub) handleEvent(ev inboundEvent) {
	c, msg := ev.client, ev.msg

	if msg.Type == models.EventJoin {
		h.handleJoin(c, msg.Data)
		return
	}

	if !c.joined {
		metrics.RecordBoardEvent(msg.Type, "ignored")
		logging.Debug().Str("conn", c.id).Str("event", msg.Type).Msg("dropping event from connection that has not joined")
		c.trySend(Message{Type: models.EventBoardError, Data: models.BoardErrorPayload{
			Code:    models.ErrCodeNotJoined,
			Message: "join the board before sending events",
		}})
		return
	}

	switch msg.Type {
	case models.EventAddNote:
		h.handleAddNote(c, msg.Data)
	case models.EventDeleteNote:
		h.handleDeleteNote(c, msg.Data)
	case models.EventAddSupplement:
		h.handleAddSupplement(c, msg.Data)
	case models.EventDeleteSupplement:
		h.handleDeleteSupplement(c, msg.Data)
	case models.EventClearSupplements:
		h.handleClearSupplements(c)
	case models.EventRequestSuggestion:
		h.handleSuggestionRequest(c, msg.Data)
	default:
		metrics.RecordBoardEvent(msg.Type, "ignored")
		logging.Debug().Str("conn", c.id).Str("event", msg.Type).Msg("ignoring unknown event type")
	}
}

func (h *Hub) handleJoin(c *Client, data json.RawMessage) {
	var p models.JoinPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
		h.rejectMalformed(c, models.EventJoin, "join requires an id")
		return
	}

	c.joined = true
	c.participant = models.Participant{ID: p.ID, Color: p.Color}
	h.presence.Join(c.id, c.participant)
	metrics.JoinedParticipants.Set(float64(h.presence.Len()))
	metrics.RecordBoardEvent(models.EventJoin, "ok")
	logging.Info().Str("conn", c.id).Str("participant", p.ID).Msg("participant joined")

	// Full participant list to everyone, then the board snapshot to the
	// joining connection. Both are computed here, in the loop, so the
	// snapshot can neither miss a concurrent mutation nor duplicate one.
	h.broadcast(models.EventUserList, models.UserListPayload{Users: h.presence.List()})
	c.trySend(Message{Type: models.EventInitialData, Data: models.InitialDataPayload{
		Notes:       h.notes.All(),
		Supplements: h.supplements.All(),
	}})
}

func (h *Hub) handleAddNote(c *Client, data json.RawMessage) {
	var p models.AddNotePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Note.ID == "" {
		h.rejectMalformed(c, models.EventAddNote, "addNote requires a note with an id")
		return
	}
	if !p.Note.Section.Valid() {
		h.rejectMalformed(c, models.EventAddNote, "unknown canvas section")
		return
	}

	stored := h.notes.Add(p.Note)
	metrics.BoardNotes.Set(float64(h.notes.Len()))
	metrics.RecordBoardEvent(models.EventAddNote, "ok")
	h.broadcast(models.EventNoteAdded, stored)
}

func (h *Hub) handleDeleteNote(c *Client, data json.RawMessage) {
	var p models.DeleteNotePayload
	if err := json.Unmarshal(data, &p); err != nil || p.NoteID == "" {
		h.rejectMalformed(c, models.EventDeleteNote, "deleteNote requires a noteId")
		return
	}

	// Unknown ids are tolerated silently: state may already have converged
	// through another client's broadcast.
	if h.notes.Remove(p.NoteID) {
		metrics.BoardNotes.Set(float64(h.notes.Len()))
		h.broadcast(models.EventNoteDeleted, models.DeleteNotePayload{NoteID: p.NoteID})
	}
	metrics.RecordBoardEvent(models.EventDeleteNote, "ok")
}

func (h *Hub) handleAddSupplement(c *Client, data json.RawMessage) {
	var item models.Supplement
	if err := json.Unmarshal(data, &item); err != nil || item.ID == "" {
		h.rejectMalformed(c, models.EventAddSupplement, "addSupplement requires an id")
		return
	}

	if !h.supplements.Add(item) {
		metrics.RecordBoardEvent(models.EventAddSupplement, "rejected")
		c.trySend(Message{Type: models.EventBoardError, Data: models.BoardErrorPayload{
			Code:    models.ErrCodeSupplementLimit,
			Message: "supplement limit reached",
		}})
		return
	}

	metrics.BoardSupplements.Set(float64(h.supplements.Len()))
	metrics.RecordBoardEvent(models.EventAddSupplement, "ok")
	h.broadcast(models.EventSupplementAdded, item)
}

func (h *Hub) handleDeleteSupplement(c *Client, data json.RawMessage) {
	var p models.DeleteSupplementPayload
	if err := json.Unmarshal(data, &p); err != nil || p.SupplementID == "" {
		h.rejectMalformed(c, models.EventDeleteSupplement, "deleteSupplement requires a supplementId")
		return
	}

	// Broadcast regardless of whether the id existed; clients treat unknown
	// deletions as no-ops.
	h.supplements.Remove(p.SupplementID)
	metrics.BoardSupplements.Set(float64(h.supplements.Len()))
	metrics.RecordBoardEvent(models.EventDeleteSupplement, "ok")
	h.broadcast(models.EventSupplementDeleted, models.DeleteSupplementPayload{SupplementID: p.SupplementID})
}

func (h *Hub) handleClearSupplements(c *Client) {
	h.supplements.Clear()
	metrics.BoardSupplements.Set(0)
	metrics.RecordBoardEvent(models.EventClearSupplements, "ok")
	h.broadcast(models.EventSupplementsCleared, struct{}{})
}

func (h *Hub) handleSuggestionRequest(c *Client, data json.RawMessage) {
	var p models.SuggestionRequestPayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.rejectMalformed(c, models.EventRequestSuggestion, "requestAiSuggestion requires a section")
		return
	}

	// Invalid sections resolve immediately; no external call is made.
	if !p.Section.Valid() {
		metrics.RecordBoardEvent(models.EventRequestSuggestion, "rejected")
		metrics.RecordSuggestion(string(p.Section), "invalid_section", 0)
		c.trySend(Message{Type: models.EventSuggestion, Data: models.SuggestionPayload{
			Section: p.Section,
			Error:   "unknown canvas section",
		}})
		return
	}

	metrics.RecordBoardEvent(models.EventRequestSuggestion, "ok")

	// The snapshot is captured synchronously in the loop; the slow external
	// call runs in its own goroutine so board events keep flowing. The
	// result goes to the requesting client only, and the client's context
	// cancels the call if the connection goes away first.
	snapshot := h.supplements.ContextText()
	go func() {
		payload := h.broker.Generate(c.ctx, p.Section, snapshot)
		c.trySend(Message{Type: models.EventSuggestion, Data: payload})
	}()
}

func (h *Hub) rejectMalformed(c *Client, event, reason string) {
	metrics.RecordBoardEvent(event, "rejected")
	logging.Warn().Str("conn", c.id).Str("event", event).Str("reason", reason).Msg("rejecting malformed payload")
	c.trySend(Message{Type: models.EventBoardError, Data: models.BoardErrorPayload{
		Code:    models.ErrCodeMalformedPayload,
		Message: reason,
	}})
}

// broadcast fans one event out to every connected client in deterministic
// order (sorted by connection id). Clients whose send queue is full are
// dropped so one stalled connection cannot block the rest.
func (h *Hub) broadcast(event string, data interface{}) {
	metrics.RecordBroadcast(event)
	msg := Message{Type: event, Data: data}

	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, c := range clients {
		select {
		case c.send <- msg:
		default:
			toRemove = append(toRemove, c)
		}
	}

	droppedJoined := false
	for _, c := range toRemove {
		metrics.SlowClientsDropped.Inc()
		logging.Warn().Str("conn", c.id).Msg("dropping slow websocket client")
		delete(h.clients, c)
		c.cancel()
		if c.joined {
			h.presence.Leave(c.id)
			droppedJoined = true
		}
	}

	if len(toRemove) > 0 {
		h.clientCount.Store(int64(len(h.clients)))
		metrics.ActiveConnections.Set(float64(len(h.clients)))
	}
	if droppedJoined {
		metrics.JoinedParticipants.Set(float64(h.presence.Len()))
		h.broadcast(models.EventUserList, models.UserListPayload{Users: h.presence.List()})
	}
}

// logGracefulShutdown closes all clients and logs structured shutdown
// information. Context cancellation is expected behavior, so no error field
// is logged.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := len(h.clients)
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// closeAllClients closes clients in id order for consistent shutdown
// behavior.
func (h *Hub) closeAllClients() {
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, c := range clients {
		c.cancel()
		delete(h.clients, c)
	}
	h.clientCount.Store(0)
	metrics.ActiveConnections.Set(0)
}
