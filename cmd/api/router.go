package main

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nailbooker/nailbooker/internal/domain/admin"
	"github.com/nailbooker/nailbooker/internal/domain/booking"
	"github.com/nailbooker/nailbooker/internal/middleware"
	"github.com/nailbooker/nailbooker/internal/pkg/metrics"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
)

type routerDeps struct {
	sessions       *session.Manager
	bookingHandler *booking.Handler
	apiHandler     *booking.APIHandler
	adminHandler   *admin.Handler
	allowedOrigins []string
	seedEnabled    bool
	pingDB         func(ctx context.Context) error
}

func newRouter(d routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(chimw.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if d.pingDB != nil {
			if err := d.pingDB(r.Context()); err != nil {
				response.Error(w, http.StatusServiceUnavailable, "UNAVAILABLE", "database unreachable")
				return
			}
		}
		response.OK(w, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORSHandler(d.allowedOrigins))
		r.Mount("/", d.apiHandler.Routes())
	})

	// HTML pages share the cookie session.
	r.Group(func(r chi.Router) {
		r.Use(d.sessions.Middleware)
		d.bookingHandler.Register(r, admin.RequireAdmin("/login"))
		d.adminHandler.Register(r, d.seedEnabled)
	})

	return r
}
