// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package models

// Section identifies one of the nine fixed regions of the business model
// canvas. The short codes match what the browser client sends.
type Section string

const (
	SectionKeyPartners       Section = "kp"
	SectionKeyActivities     Section = "ka"
	SectionValuePropositions Section = "vp"
	SectionCustomerRelations Section = "cr"
	SectionCustomerSegments  Section = "cs"
	SectionKeyResources      Section = "kr"
	SectionChannels          Section = "ch"
	SectionCostStructure     Section = "c"
	SectionRevenueStreams    Section = "r"
)

// Sections lists every valid canvas section in canonical order.
var Sections = []Section{
	SectionKeyPartners,
	SectionKeyActivities,
	SectionValuePropositions,
	SectionCustomerRelations,
	SectionCustomerSegments,
	SectionKeyResources,
	SectionChannels,
	SectionCostStructure,
	SectionRevenueStreams,
}

// Valid reports whether s is one of the nine canvas sections.
func (s Section) Valid() bool {
	switch s {
	case SectionKeyPartners, SectionKeyActivities, SectionValuePropositions,
		SectionCustomerRelations, SectionCustomerSegments, SectionKeyResources,
		SectionChannels, SectionCostStructure, SectionRevenueStreams:
		return true
	}
	return false
}

// Participant is one live connection's presence entry. ID is the
// client-chosen display name (not guaranteed unique across connections,
// a documented limitation of the protocol); Color is an RGB hex string
// picked client-side.
type Participant struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// Note is a sticky note pinned to a canvas section. The id is generated
// client-side (timestamp-derived) and is the sole identity key for deletion;
// the server stores the note exactly as submitted and never rewrites it.
type Note struct {
	ID      string  `json:"id"`
	Text    string  `json:"text"`
	Section Section `json:"section"`
	Color   string  `json:"color"`
	Author  string  `json:"author"`
}

// Supplement is a free-text reference snippet used as generation context.
// Expanded is a client-only UI flag carried through unchanged.
type Supplement struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Expanded bool   `json:"expanded,omitempty"`
}
