package admin

import (
	"errors"
	"net/http"

	"github.com/nailbooker/nailbooker/internal/pkg/errorhandler"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/metrics"
	"github.com/nailbooker/nailbooker/internal/pkg/password"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
	"github.com/nailbooker/nailbooker/internal/pkg/validator"
	"github.com/nailbooker/nailbooker/internal/web"
)

// SeedCredentials is the credential inserted by GET /seed-admin.
type SeedCredentials struct {
	Username string
	Password string
}

// Handler handles admin login, logout and bootstrap seeding
type Handler struct {
	service  *Service
	renderer *web.Renderer
	sessions *session.Manager
	seed     SeedCredentials
}

// NewHandler creates admin handler
func NewHandler(service *Service, renderer *web.Renderer, sessions *session.Manager, seed SeedCredentials) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		sessions: sessions,
		seed:     seed,
	}
}

// LoginForm handles GET /login
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "login", "Admin Login", nil)
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, s)
		return
	}

	req := LoginRequestFromForm(r.PostForm)
	if failures := validator.Check(req); len(failures) > 0 {
		h.fail(w, r, s)
		return
	}

	a, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.fail(w, r, s)
			return
		}
		errorhandler.InternalPage(r.Context(), w, "admin.login", err)
		return
	}

	if err := h.sessions.Renew(r.Context(), s); err != nil {
		errorhandler.InternalPage(r.Context(), w, "admin.login", err)
		return
	}
	s.Admin = true
	s.Username = a.Username
	s.AddFlash(session.FlashSuccess, "Welcome back!")
	if err := h.sessions.Save(r.Context(), w, s); err != nil {
		errorhandler.InternalPage(r.Context(), w, "admin.login", err)
		return
	}

	metrics.IncAdminLogin("success")
	logger.FromContext(r.Context()).Info().Str("username", a.Username).Msg("Admin logged in")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// fail answers every rejected login the same way, whatever the cause.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, s *session.Session) {
	metrics.IncAdminLogin("failure")
	s.AddFlash(session.FlashDanger, "Invalid credentials.")
	if err := h.sessions.Save(r.Context(), w, s); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to save session")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout handles GET /logout. Every session value is dropped.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := h.sessions.Destroy(r.Context(), s); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to delete session")
	}
	s.AddFlash(session.FlashInfo, "You have been logged out.")
	if err := h.sessions.Save(r.Context(), w, s); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to save session")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SeedAdmin handles GET /seed-admin. Only mounted outside production when
// explicitly enabled.
func (h *Handler) SeedAdmin(w http.ResponseWriter, r *http.Request) {
	_, err := h.service.Seed(r.Context(), h.seed.Username, h.seed.Password)
	switch {
	case err == nil:
		response.Text(w, http.StatusOK, "Admin user created.")
	case errors.Is(err, ErrUsernameTaken):
		response.Text(w, http.StatusConflict, "Error: "+err.Error())
	case errors.Is(err, ErrEmptyUsername), errors.Is(err, password.ErrEmptyPassword):
		response.Text(w, http.StatusBadRequest, "Error: seed credentials are not configured")
	default:
		errorhandler.InternalPage(r.Context(), w, "admin.seed", err)
	}
}
