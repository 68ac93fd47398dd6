// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package board

import (
	"github.com/mkeller0x/canvasync/internal/models"
)

// NoteStore is the ordered collection of live sticky notes.
//
// Ids are client-generated and treated as the sole identity key; the store
// never regenerates them and never deduplicates on add. Notes are immutable
// once stored — a client-side recolor arrives as delete-then-add.
type NoteStore struct {
	notes []models.Note
}

// NewNoteStore creates an empty note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// Add appends the note as submitted and returns it unchanged.
func (s *NoteStore) Add(note models.Note) models.Note {
	s.notes = append(s.notes, note)
	return note
}

// Remove deletes the first note with the given id and reports whether one
// was removed. An unknown id is a no-op: distributed state may already have
// converged through another client's broadcast.
func (s *NoteStore) Remove(noteID string) bool {
	for i, n := range s.notes {
		if n.ID == noteID {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return true
		}
	}
	return false
}

// All returns an insertion-ordered snapshot of all live notes.
func (s *NoteStore) All() []models.Note {
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of live notes.
func (s *NoteStore) Len() int {
	return len(s.notes)
}
