package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nailbooker/nailbooker/internal/domain/admin"
	"github.com/nailbooker/nailbooker/internal/pkg/errorhandler"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
	"github.com/nailbooker/nailbooker/internal/web"
)

// Flash texts shown to the customer and the admin.
const (
	msgMissingFields = "Please fill out all fields."
	msgInvalidDate   = "Invalid date or time."
	msgInvalidSvc    = "Selected service is invalid."
	msgTooLong       = "Please keep each field under 120 characters."
	msgSubmitted     = "Your appointment request has been submitted!"
	msgApproved      = "Booking approved."
	msgCancelled     = "Booking cancelled."
)

// Handler serves the public booking pages and the admin dashboard.
type Handler struct {
	service  *Service
	renderer *web.Renderer
	sessions *session.Manager
}

// NewHandler creates booking handler
func NewHandler(service *Service, renderer *web.Renderer, sessions *session.Manager) *Handler {
	return &Handler{service: service, renderer: renderer, sessions: sessions}
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "index", "Home", map[string]interface{}{
		"Services": h.service.Catalog().All(),
	})
}

// BookForm handles GET /book
func (h *Handler) BookForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, "booking", "Book Appointment", map[string]interface{}{
		"Services": h.service.Catalog().All(),
		"Selected": r.URL.Query().Get("service"),
	})
}

// Book handles POST /book
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.flashRedirect(w, r, session.FlashDanger, msgMissingFields, "/book")
		return
	}

	_, err := h.service.Submit(r.Context(), SubmitRequestFromForm(r.PostForm))
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			errorhandler.LogValidation(r.Context(), "booking.submit", verr.Fields)
			h.flashRedirect(w, r, session.FlashDanger, validationMessage(err), "/book")
			return
		}
		errorhandler.InternalPage(r.Context(), w, "booking.submit", err)
		return
	}

	h.flashRedirect(w, r, session.FlashSuccess, msgSubmitted, "/")
}

// ServiceDetail handles GET /service/{slug}
func (h *Handler) ServiceDetail(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service.Catalog().Lookup(chi.URLParam(r, "slug"))
	if !ok {
		response.Text(w, http.StatusNotFound, "Service not found")
		return
	}
	h.renderer.Render(w, r, http.StatusOK, "service", svc.Name, map[string]interface{}{
		"Service": svc,
	})
}

// Dashboard handles GET /dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter := statusFilter(r)

	bookings, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorhandler.InternalPage(r.Context(), w, "booking.list", err)
		return
	}

	var current string
	if filter != nil {
		current = string(*filter)
	}
	h.renderer.Render(w, r, http.StatusOK, "dashboard", "Dashboard", map[string]interface{}{
		"Bookings": bookings,
		"Statuses": Statuses,
		"Filter":   current,
	})
}

// Approve handles GET /approve/{id}
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	principal, _ := admin.PrincipalFromContext(r.Context())
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	if err := h.service.Approve(r.Context(), principal.Username, id); err != nil {
		errorhandler.InternalPage(r.Context(), w, "booking.approve", err)
		return
	}
	h.flashRedirect(w, r, session.FlashSuccess, msgApproved, "/dashboard")
}

// Cancel handles GET /cancel/{id}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	principal, _ := admin.PrincipalFromContext(r.Context())
	id, ok := bookingID(w, r)
	if !ok {
		return
	}
	if err := h.service.Cancel(r.Context(), principal.Username, id); err != nil {
		errorhandler.InternalPage(r.Context(), w, "booking.cancel", err)
		return
	}
	h.flashRedirect(w, r, session.FlashWarning, msgCancelled, "/dashboard")
}

// Export handles GET /dashboard/export.xlsx
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context(), statusFilter(r))
	if err != nil {
		errorhandler.InternalPage(r.Context(), w, "booking.export", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings-`+time.Now().Format("20060102")+`.xlsx"`)
	if err := WriteXLSX(w, bookings); err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to write bookings export")
	}
}

func (h *Handler) flashRedirect(w http.ResponseWriter, r *http.Request, category, message, to string) {
	if s := session.FromContext(r.Context()); s != nil {
		s.AddFlash(category, message)
		if err := h.sessions.Save(r.Context(), w, s); err != nil {
			logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to save flash message")
		}
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, ErrInvalidDateTime):
		return msgInvalidDate
	case errors.Is(err, ErrUnknownService):
		return msgInvalidSvc
	default:
		return msgTooLong
	}
}

func statusFilter(r *http.Request) *Status {
	st, ok := ParseStatus(r.URL.Query().Get("status"))
	if !ok {
		return nil
	}
	return &st
}

func bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.Text(w, http.StatusNotFound, "Not Found")
		return 0, false
	}
	return id, true
}
