// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package suggest

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/metrics"
	"github.com/mkeller0x/canvasync/internal/models"
)

// Broker turns a section request plus a supplement snapshot into an
// aiSuggestion payload for the requesting connection.
//
// The generation call runs behind a circuit breaker so a degraded provider
// fails fast instead of tying up requests for the full timeout. A Broker
// with a nil generator (AI not configured) resolves every request to an
// error payload without any external call.
type Broker struct {
	generator Generator
	timeout   time.Duration
	cb        *gobreaker.CircuitBreaker[string]
	name      string
}

// NewBroker creates a suggestion broker. generator may be nil when the
// generation service is not configured.
//
// Circuit breaker settings:
// - Opens after >=60% failures over at least 5 requests in a 1 minute window
// - Waits 2 minutes before probing with up to 2 half-open requests
func NewBroker(generator Generator, timeout time.Duration) *Broker {
	cbName := "ai-suggestions"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Broker{
		generator: generator,
		timeout:   timeout,
		cb:        cb,
		name:      cbName,
	}
}

// Enabled reports whether a generation service is configured.
func (b *Broker) Enabled() bool {
	return b.generator != nil
}

// ValidateSection checks the section against the nine-section enumeration.
// Callers must validate before Generate so an invalid section never causes
// an external call.
func (b *Broker) ValidateSection(section models.Section) bool {
	_, ok := SectionPrompt(section)
	return ok
}

// Generate produces the response payload for one suggestion request. It
// blocks for up to the configured timeout and must be called off the hub's
// event loop. supplements is the point-in-time snapshot captured when the
// request was accepted.
//
// Every failure path returns a payload with Error set; Generate never
// returns a Go error.
func (b *Broker) Generate(ctx context.Context, section models.Section, supplements string) models.SuggestionPayload {
	start := time.Now()

	if !b.ValidateSection(section) {
		metrics.RecordSuggestion(string(section), "invalid_section", 0)
		return models.SuggestionPayload{Section: section, Error: "unknown canvas section"}
	}

	if b.generator == nil {
		metrics.RecordSuggestion(string(section), "error", 0)
		return models.SuggestionPayload{Section: section, Error: "AI suggestions are not configured"}
	}

	userMsg, err := UserMessage(section, supplements)
	if err != nil {
		metrics.RecordSuggestion(string(section), "error", 0)
		return models.SuggestionPayload{Section: section, Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	suggestion, err := b.cb.Execute(func() (string, error) {
		return b.generator.Complete(ctx, SystemPrompt, userMsg)
	})
	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
			logging.Warn().Str("section", string(section)).Msg("suggestion rejected, circuit breaker open")
		} else {
			logging.Error().Err(err).Str("section", string(section)).Msg("suggestion generation failed")
		}
		metrics.RecordSuggestion(string(section), outcome, time.Since(start))
		return models.SuggestionPayload{Section: section, Error: userFacingError(err)}
	}

	logging.Info().Str("section", string(section)).Dur("elapsed", time.Since(start)).Msg("suggestion generated")
	metrics.RecordSuggestion(string(section), "success", time.Since(start))
	return models.SuggestionPayload{Section: section, Suggestion: suggestion}
}

// userFacingError maps internal failures to a message safe to show in the
// browser's suggestion modal.
func userFacingError(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "the suggestion service is temporarily unavailable, try again later"
	case errors.Is(err, context.DeadlineExceeded):
		return "the suggestion request timed out"
	case errors.Is(err, context.Canceled):
		return "the suggestion request was canceled"
	default:
		return err.Error()
	}
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
