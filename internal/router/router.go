// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the JSON API routes to their handlers and
// middleware chains. Reads are open to anonymous viewers; everything
// that mutates state sits behind the session check.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gavel/internal/handlers"
	"gavel/internal/middleware"
	"gavel/internal/session"
)

// New creates the configured chi router with all middleware and routes.
func New(
	sessionStore *session.Store,
	rateLimiter *middleware.RateLimiter,
	auth *handlers.Auth,
	listings *handlers.Listings,
	comments *handlers.Comments,
	categories *handlers.Categories,
	aiHandler *handlers.AI,
	media *handlers.Media,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(rateLimiter.Middleware)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Account endpoints. Login and register are open. Logout and
		// code verification stay reachable for half-authenticated
		// sessions; setup does not, because it replaces the TOTP secret.
		r.Post("/register", auth.Register)
		r.Post("/login", auth.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/logout", auth.Logout)
			r.Post("/2fa/verify", auth.TwoFAVerify)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.Require2FA)
			r.Get("/user", auth.Me)
			r.Post("/2fa/setup", auth.TwoFASetup)
		})

		// Listings. Reads are anonymous-friendly so browsing works
		// without an account.
		r.Route("/listings", func(r chi.Router) {
			r.Get("/", listings.List)
			r.Get("/map", listings.Map)
			r.Get("/{id}", listings.Detail)
			r.Get("/{id}/comments", comments.List)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth, middleware.Require2FA)
				r.Post("/", listings.Create)
				r.Put("/{id}", listings.Update)
				r.Post("/{id}/close", listings.Close)
				r.Post("/{id}/bids", listings.PlaceBid)
				r.Post("/{id}/watch", listings.Watch)
				r.Post("/{id}/ratings", listings.Rate)
				r.Post("/{id}/comments", comments.Create)
			})
		})

		authed := []func(http.Handler) http.Handler{middleware.RequireAuth, middleware.Require2FA}

		r.With(authed...).Get("/watchlist", listings.WatchlistIndex)

		// Categories.
		r.Get("/categories", categories.List)
		r.Get("/categories/{id}/listings", categories.Listings)
		r.With(authed...).Post("/categories", categories.Create)

		// Helpers behind auth.
		r.With(authed...).Post("/ai/description", aiHandler.GenerateDescription)
		r.With(authed...).Post("/media", media.Upload)
		r.With(authed...).Delete("/media/{filename}", media.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
