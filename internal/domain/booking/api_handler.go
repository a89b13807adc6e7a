package booking

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nailbooker/nailbooker/internal/pkg/errorhandler"
	"github.com/nailbooker/nailbooker/internal/pkg/response"
)

// APIHandler exposes the catalog and booking submission as JSON.
type APIHandler struct {
	service *Service
}

// NewAPIHandler creates the JSON handler
func NewAPIHandler(service *Service) *APIHandler {
	return &APIHandler{service: service}
}

// ListServices handles GET /api/v1/services
func (h *APIHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.service.Catalog().All())
}

// GetService handles GET /api/v1/services/{slug}
func (h *APIHandler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service.Catalog().Lookup(chi.URLParam(r, "slug"))
	if !ok {
		response.NotFound(w, "Service not found")
		return
	}
	response.OK(w, svc)
}

// CreateBooking handles POST /api/v1/bookings
func (h *APIHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	b, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(w, validationMessage(err), verr.Fields)
			return
		}
		errorhandler.InternalJSON(r.Context(), w, "booking.submit", err)
		return
	}

	response.Created(w, b)
}
