// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package board

import (
	"strings"

	"github.com/mkeller0x/canvasync/internal/models"
)

// SupplementStore is the bounded ordered collection of reference snippets.
//
// The browser enforces the cap before emitting addSupplement, but the server
// re-enforces it so the bound holds under concurrent uploaders.
type SupplementStore struct {
	limit int
	items []models.Supplement
}

// NewSupplementStore creates an empty store capped at limit entries.
func NewSupplementStore(limit int) *SupplementStore {
	return &SupplementStore{limit: limit}
}

// Add appends the supplement if the store is below capacity and reports
// whether it was accepted.
func (s *SupplementStore) Add(item models.Supplement) bool {
	if len(s.items) >= s.limit {
		return false
	}
	s.items = append(s.items, item)
	return true
}

// Remove deletes the supplement with the given id. Unknown ids are a no-op;
// the caller broadcasts the deletion regardless so clients converge.
func (s *SupplementStore) Remove(id string) {
	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Clear empties the collection.
func (s *SupplementStore) Clear() {
	s.items = nil
}

// All returns an insertion-ordered snapshot of all supplements.
func (s *SupplementStore) All() []models.Supplement {
	out := make([]models.Supplement, len(s.items))
	copy(out, s.items)
	return out
}

// ContextText returns all current item texts newline-joined, as generation
// context for the suggestion broker. The result is an independent string,
// so an in-flight request is unaffected by later mutations.
func (s *SupplementStore) ContextText() string {
	texts := make([]string, 0, len(s.items))
	for _, item := range s.items {
		texts = append(texts, item.Text)
	}
	return strings.Join(texts, "\n")
}

// Len returns the number of stored supplements.
func (s *SupplementStore) Len() int {
	return len(s.items)
}

// Limit returns the configured capacity.
func (s *SupplementStore) Limit() int {
	return s.limit
}
