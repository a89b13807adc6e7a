package admin

import (
	"github.com/go-chi/chi/v5"
)

// Register mounts login, logout and, when seedEnabled, the bootstrap route.
func (h *Handler) Register(r chi.Router, seedEnabled bool) {
	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/logout", h.Logout)

	if seedEnabled {
		r.Get("/seed-admin", h.SeedAdmin)
	}
}
