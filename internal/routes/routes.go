package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/wayfareapp/wayfare-backend/internal/handlers"
	"github.com/wayfareapp/wayfare-backend/internal/middleware"
)

// SetupRoutes mounts every API route. Handlers arrive fully constructed with
// their store dependencies; nothing here reaches for a global. Mutating
// resource routes sit behind RequireAuth so the acting identity always comes
// from a verified session token.
func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, trips *handlers.TripHandler, reviews *handlers.ReviewHandler, upload *handlers.UploadHandler, sessions middleware.SessionValidator) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/users/register", auth.Register)
		r.Post("/users/login", auth.Login)
		r.Post("/users/logout", auth.Logout)
		r.Get("/users", auth.GetUsers)

		r.Post("/savedtrips", trips.Create)
		r.Get("/savedtrips", trips.List)
		r.Get("/savedtrips/{id}", trips.Get)

		r.Post("/reviews", reviews.Create)
		r.Get("/reviews", reviews.List)
		r.Get("/reviews/{id}", reviews.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(sessions))
			r.Patch("/savedtrips/{id}", trips.Update)
			r.Patch("/reviews/{id}", reviews.Update)
			r.Delete("/reviews/{id}", reviews.Delete)
			r.Post("/upload", upload.Upload)
		})
	})
}
