// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBoardEvent(t *testing.T) {
	before := testutil.ToFloat64(BoardEventsTotal.WithLabelValues("addNote", "ok"))
	RecordBoardEvent("addNote", "ok")
	after := testutil.ToFloat64(BoardEventsTotal.WithLabelValues("addNote", "ok"))

	if after != before+1 {
		t.Errorf("counter did not increment: before=%f after=%f", before, after)
	}
}

func TestRecordBroadcast(t *testing.T) {
	before := testutil.ToFloat64(BroadcastsTotal.WithLabelValues("noteAdded"))
	RecordBroadcast("noteAdded")
	after := testutil.ToFloat64(BroadcastsTotal.WithLabelValues("noteAdded"))

	if after != before+1 {
		t.Errorf("counter did not increment: before=%f after=%f", before, after)
	}
}

func TestRecordSuggestionOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		section string
		outcome string
	}{
		{"success", "vp", "success"},
		{"provider error", "kp", "error"},
		{"invalid section", "bogus", "invalid_section"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SuggestionRequestsTotal.WithLabelValues(tt.section, tt.outcome))
			RecordSuggestion(tt.section, tt.outcome, 100*time.Millisecond)
			after := testutil.ToFloat64(SuggestionRequestsTotal.WithLabelValues(tt.section, tt.outcome))
			if after != before+1 {
				t.Errorf("counter did not increment for %s/%s", tt.section, tt.outcome)
			}
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))
	RecordAPIRequest("GET", "/api/v1/health", 200, 5*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/health", "200"))

	if after != before+1 {
		t.Errorf("counter did not increment: before=%f after=%f", before, after)
	}
}

func TestGauges(t *testing.T) {
	ActiveConnections.Set(3)
	if got := testutil.ToFloat64(ActiveConnections); got != 3 {
		t.Errorf("ActiveConnections = %f, want 3", got)
	}
	ActiveConnections.Set(0)

	BoardNotes.Set(7)
	if got := testutil.ToFloat64(BoardNotes); got != 7 {
		t.Errorf("BoardNotes = %f, want 7", got)
	}
	BoardNotes.Set(0)
}
