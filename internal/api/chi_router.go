// Canvasync - Real-Time Business Model Canvas Collaboration
// Copyright 2026 M. Keller (mkeller0x)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mkeller0x/canvasync

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkeller0x/canvasync/internal/middleware"
)

// Router assembles the HTTP routes around a Handler.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil chiMiddleware gets secure defaults.
func NewRouter(handler *Handler, cm *ChiMiddleware) *Router {
	if cm == nil {
		cm = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: cm,
	}
}

// SetupChi configures all HTTP routes using the Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order. CORS is global so
	// OPTIONS preflights are handled everywhere.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Health endpoints: permissive rate limiting for monitoring tools.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Board endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		// The upgrade endpoint gets its own limit; event traffic after the
		// upgrade is rate limited per connection by the hub.
		r.With(router.chiMiddleware.RateLimitCustom(RateLimitWebSocket)).
			Get("/ws", router.handler.WebSocket)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.Compression)
			r.Get("/board", router.handler.Board)
		})

		r.With(router.chiMiddleware.RateLimitCustom(RateLimitAITest)).
			Post("/test-ai", router.handler.TestAI)
	})

	// Prometheus scrape endpoint.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
