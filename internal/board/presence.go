// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package board

import (
	"github.com/mkeller0x/canvasync/internal/models"
)

// Presence tracks which connection belongs to which participant.
//
// Entries are keyed by the opaque connection id assigned at upgrade time,
// so there is at most one participant per connection. Display names are
// client-supplied and deliberately not checked for uniqueness; the browser
// UI filters by name string and accepts collisions.
type Presence struct {
	byConn map[string]models.Participant
	order  []string // connection ids in join order
}

// NewPresence creates an empty presence registry.
func NewPresence() *Presence {
	return &Presence{
		byConn: make(map[string]models.Participant),
	}
}

// Join inserts or overwrites the participant for connID. Re-joining on the
// same connection updates the entry in place without changing its position.
func (p *Presence) Join(connID string, participant models.Participant) {
	if _, ok := p.byConn[connID]; !ok {
		p.order = append(p.order, connID)
	}
	p.byConn[connID] = participant
}

// Leave removes the participant for connID. No-op if absent.
func (p *Presence) Leave(connID string) {
	if _, ok := p.byConn[connID]; !ok {
		return
	}
	delete(p.byConn, connID)
	for i, id := range p.order {
		if id == connID {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// List returns a join-ordered snapshot of all participants. The returned
// slice is a copy, never empty-nil (clients expect a JSON array).
func (p *Presence) List() []models.Participant {
	out := make([]models.Participant, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byConn[id])
	}
	return out
}

// Len returns the number of joined participants.
func (p *Presence) Len() int {
	return len(p.byConn)
}

// Joined reports whether connID has a presence entry.
func (p *Presence) Joined(connID string) bool {
	_, ok := p.byConn[connID]
	return ok
}
