// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/mkeller0x/canvasync/internal/config"
	"github.com/mkeller0x/canvasync/internal/logging"
	"github.com/mkeller0x/canvasync/internal/models"
	"github.com/mkeller0x/canvasync/internal/suggest"
	ws "github.com/mkeller0x/canvasync/internal/websocket"
)

func init() {
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 3001},
		Board: config.BoardConfig{
			SupplementLimit: 100,
			SendBuffer:      64,
			MaxMessageSize:  512 * 1024,
		},
		Security: config.SecurityConfig{
			CORSOrigins: []string{"http://localhost:3000"},
		},
	}
}

// startTestHub runs a hub for the duration of the test.
func startTestHub(t *testing.T, cfg *config.Config, broker *suggest.Broker) *ws.Hub {
	t.Helper()
	hub := ws.NewHub(cfg.Board, broker)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.RunWithContext(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("hub did not stop")
		}
	})
	return hub
}

func newTestServer(t *testing.T, broker *suggest.Broker) (*httptest.Server, *ws.Hub) {
	t.Helper()
	cfg := testConfig()
	hub := startTestHub(t, cfg, broker)
	handler := NewHandler(cfg, hub, broker, "test")
	router := NewRouter(handler, NewChiMiddlewareFromSecurity(cfg.Security.CORSOrigins, 0, 0))
	srv := httptest.NewServer(router.SetupChi())
	t.Cleanup(srv.Close)
	return srv, hub
}

func decodeResponse(t *testing.T, resp *http.Response) models.APIResponse {
	t.Helper()
	defer resp.Body.Close()
	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestHealthEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	t.Run("health reports status and connection count", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/health")
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		envelope := decodeResponse(t, resp)
		if envelope.Status != "success" {
			t.Errorf("envelope status = %q", envelope.Status)
		}
		data := envelope.Data.(map[string]interface{})
		if data["status"] != "healthy" {
			t.Errorf("health status = %v", data["status"])
		}
		if data["ai_enabled"] != false {
			t.Errorf("ai_enabled = %v, want false", data["ai_enabled"])
		}
	})

	t.Run("liveness probe", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/health/live")
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("readiness probe", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/health/ready")
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})

	t.Run("responses carry security headers", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/health")
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("X-Content-Type-Options = %q", got)
		}
		if got := resp.Header.Get("X-Request-ID"); got == "" {
			t.Error("missing X-Request-ID header")
		}
	})
}

func TestBoardEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/v1/board")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	envelope := decodeResponse(t, resp)
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q", envelope.Status)
	}
	data := envelope.Data.(map[string]interface{})
	for _, key := range []string{"users", "notes", "supplements"} {
		if _, ok := data[key]; !ok {
			t.Errorf("snapshot missing %q", key)
		}
	}
}

func TestTestAIEndpoint(t *testing.T) {
	t.Run("503 when AI is not configured", func(t *testing.T) {
		srv, _ := newTestServer(t, suggest.NewBroker(nil, time.Second))

		resp, err := http.Post(srv.URL+"/api/v1/test-ai", "application/json", nil)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", resp.StatusCode)
		}
	})

	t.Run("probes the configured generator", func(t *testing.T) {
		gen := &staticGenerator{reply: "### Recommendations"}
		srv, _ := newTestServer(t, suggest.NewBroker(gen, time.Second))

		resp, err := http.Post(srv.URL+"/api/v1/test-ai", "application/json",
			strings.NewReader(`{"section":"vp"}`))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		envelope := decodeResponse(t, resp)
		data := envelope.Data.(map[string]interface{})
		if data["suggestion"] != "### Recommendations" {
			t.Errorf("suggestion = %v", data["suggestion"])
		}
	})

	t.Run("rejects an unknown section", func(t *testing.T) {
		gen := &staticGenerator{reply: "unused"}
		srv, _ := newTestServer(t, suggest.NewBroker(gen, time.Second))

		resp, err := http.Post(srv.URL+"/api/v1/test-ai", "application/json",
			strings.NewReader(`{"section":"bogus"}`))
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", resp.StatusCode)
		}
	})
}

type staticGenerator struct {
	reply string
}

func (g *staticGenerator) Complete(_ context.Context, _, _ string) (string, error) {
	return g.reply, nil
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "canvasync_") {
		t.Error("metrics output missing canvasync_ series")
	}
}
