// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package models

// WebSocket event names. Inbound events come from browser clients, outbound
// events are emitted by the hub. The names are part of the wire protocol and
// must match the client exactly.
const (
	// Inbound (client -> server)
	EventJoin              = "join"
	EventAddNote           = "addNote"
	EventDeleteNote        = "deleteNote"
	EventAddSupplement     = "addSupplement"
	EventDeleteSupplement  = "deleteSupplement"
	EventClearSupplements  = "clearSupplements"
	EventRequestSuggestion = "requestAiSuggestion"
	EventPing              = "ping"

	// Outbound (server -> client)
	EventUserList           = "userList"
	EventInitialData        = "initialData"
	EventNoteAdded          = "noteAdded"
	EventNoteDeleted        = "noteDeleted"
	EventSupplementAdded    = "supplementAdded"
	EventSupplementDeleted  = "supplementDeleted"
	EventSupplementsCleared = "supplementsCleared"
	EventSuggestion         = "aiSuggestion"
	EventBoardError         = "boardError"
	EventPong               = "pong"
)

// Error codes carried by BoardErrorPayload.
const (
	ErrCodeMalformedPayload = "MALFORMED_PAYLOAD"
	ErrCodeNotJoined        = "NOT_JOINED"
	ErrCodeSupplementLimit  = "SUPPLEMENT_LIMIT"
	ErrCodeRateLimited      = "RATE_LIMITED"
)

// JoinPayload registers the sender's presence.
type JoinPayload struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// AddNotePayload wraps the note being pinned.
type AddNotePayload struct {
	Note Note `json:"note"`
}

// DeleteNotePayload removes a note by id.
type DeleteNotePayload struct {
	NoteID string `json:"noteId"`
}

// DeleteSupplementPayload removes a supplement by id.
type DeleteSupplementPayload struct {
	SupplementID string `json:"supplementId"`
}

// SuggestionRequestPayload asks for AI-generated content for one section.
type SuggestionRequestPayload struct {
	Section Section `json:"section"`
}

// UserListPayload carries the full current participant list. Clients render
// the whole list on every change, so deltas are never sent.
type UserListPayload struct {
	Users []Participant `json:"users"`
}

// InitialDataPayload is the point-in-time board snapshot pushed to a
// connection when it joins.
type InitialDataPayload struct {
	Notes       []Note       `json:"notes"`
	Supplements []Supplement `json:"supplements"`
}

// SuggestionPayload is the broker's response to the requesting connection.
// Exactly one of Suggestion or Error is set.
type SuggestionPayload struct {
	Section    Section `json:"section"`
	Suggestion string  `json:"suggestion,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// BoardErrorPayload reports a recoverable per-event failure to the acting
// client only. The hub never terminates a connection over one bad message.
type BoardErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BoardSnapshot is the REST view of the full board state served by
// GET /api/v1/board.
type BoardSnapshot struct {
	Users       []Participant `json:"users"`
	Notes       []Note        `json:"notes"`
	Supplements []Supplement  `json:"supplements"`
}
