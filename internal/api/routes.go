package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the calculator session endpoints on r.
func RegisterRoutes(r chi.Router, sessions *SessionHandler, stream *StreamHandler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessions.GetSession)
			r.Delete("/", sessions.DeleteSession)
			r.Post("/actions", sessions.ApplyAction)
			r.Post("/keys", sessions.ApplyKeys)
			r.Get("/stream", stream.Stream)
		})
	})
}
