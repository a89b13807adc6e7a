package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register mounts the public pages and the admin dashboard on r.
// requireAdmin guards every dashboard route.
func (h *Handler) Register(r chi.Router, requireAdmin func(http.Handler) http.Handler) {
	r.Get("/", h.Home)
	r.Get("/book", h.BookForm)
	r.Post("/book", h.Book)
	r.Get("/service/{slug}", h.ServiceDetail)

	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Get("/dashboard", h.Dashboard)
		r.Get("/dashboard/export.xlsx", h.Export)
		r.Get("/approve/{id}", h.Approve)
		r.Get("/cancel/{id}", h.Cancel)
	})
}

// Routes returns the JSON API router
func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/services", h.ListServices)
	r.Get("/services/{slug}", h.GetService)
	r.Post("/bookings", h.CreateBooking)

	return r
}
