// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeHub struct {
	started chan struct{}
}

func (f *fakeHub) RunWithContext(ctx context.Context) error {
	close(f.started)
	<-ctx.Done()
	return ctx.Err()
}

func TestHubService(t *testing.T) {
	t.Run("delegates to the hub and returns on cancel", func(t *testing.T) {
		hub := &fakeHub{started: make(chan struct{})}
		svc := NewHubService(hub)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		select {
		case <-hub.started:
		case <-time.After(2 * time.Second):
			t.Fatal("hub never started")
		}

		cancel()
		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve returned %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}
	})

	t.Run("names itself for supervisor logs", func(t *testing.T) {
		svc := NewHubService(&fakeHub{started: make(chan struct{})})
		if svc.String() != "board-hub" {
			t.Errorf("String() = %q", svc.String())
		}
	})
}

type fakeHTTPServer struct {
	listenErr  error
	listenStop chan struct{}
	shutdowns  chan struct{}
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		listenStop: make(chan struct{}),
		shutdowns:  make(chan struct{}, 1),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.listenStop
	return nil
}

func (f *fakeHTTPServer) Shutdown(ctx context.Context) error {
	f.shutdowns <- struct{}{}
	close(f.listenStop)
	return nil
}

func TestHTTPServerService(t *testing.T) {
	t.Run("propagates listen failures", func(t *testing.T) {
		srv := newFakeHTTPServer()
		srv.listenErr = errors.New("address in use")
		svc := NewHTTPServerService(srv, time.Second)

		err := svc.Serve(context.Background())
		if err == nil || !errors.Is(err, srv.listenErr) {
			t.Errorf("Serve returned %v, want wrapped listen error", err)
		}
	})

	t.Run("shuts down gracefully on cancel", func(t *testing.T) {
		srv := newFakeHTTPServer()
		svc := NewHTTPServerService(srv, time.Second)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- svc.Serve(ctx) }()

		// Give the listener goroutine a moment to start.
		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve returned %v, want context.Canceled", err)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Serve did not return")
		}

		select {
		case <-srv.shutdowns:
		default:
			t.Error("Shutdown was never called")
		}
	})

	t.Run("applies a default shutdown timeout", func(t *testing.T) {
		svc := NewHTTPServerService(newFakeHTTPServer(), 0)
		if svc.shutdownTimeout != 10*time.Second {
			t.Errorf("shutdownTimeout = %v, want 10s", svc.shutdownTimeout)
		}
	})
}
