package booking

import (
	"context"
	"fmt"

	"github.com/nailbooker/nailbooker/internal/catalog"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/metrics"
	"github.com/nailbooker/nailbooker/internal/pkg/notify"
	"github.com/nailbooker/nailbooker/internal/pkg/validator"
)

// Notifier receives a message for every accepted booking.
type Notifier interface {
	Notify(ctx context.Context, msg notify.Message) error
}

// Service handles the booking workflow and admin status transitions
type Service struct {
	repo     Repository
	catalog  *catalog.Catalog
	notifier Notifier
}

// NewService creates booking service. notifier may be nil.
func NewService(repo Repository, cat *catalog.Catalog, notifier Notifier) *Service {
	return &Service{repo: repo, catalog: cat, notifier: notifier}
}

// Catalog returns the service catalog bookings are validated against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Submit validates a request and stores it as a Pending booking. The
// operator notification is best-effort: its failure never fails Submit.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*Booking, error) {
	req.normalize()

	if err := check(req); err != nil {
		metrics.IncBookingSubmitted("rejected")
		return nil, err
	}

	svc, ok := s.catalog.Lookup(req.Service)
	if !ok {
		metrics.IncBookingSubmitted("rejected")
		return nil, &ValidationError{Err: ErrUnknownService, Fields: map[string]string{"service": "Unknown service"}}
	}

	b := &Booking{
		CustomerName: req.Name,
		Contact:      req.Contact,
		Service:      svc.Name,
		Date:         req.Date,
		Time:         req.Time,
		Status:       StatusPending,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.IncBookingSubmitted("created")

	logger.FromContext(ctx).Info().
		Int64("booking_id", b.ID).
		Str("service", b.Service).
		Str("slot_date", b.Date).
		Str("slot_time", b.Time).
		Msg("Booking submitted")

	s.notify(ctx, b)
	return b, nil
}

func (s *Service) notify(ctx context.Context, b *Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, newBookingMessage(b)); err != nil {
		logger.FromContext(ctx).Error().Err(err).
			Int64("booking_id", b.ID).
			Msg("Failed to notify operator about booking")
	}
}

func newBookingMessage(b *Booking) notify.Message {
	return notify.Message{
		Subject: "New booking request: " + b.Service,
		Body: fmt.Sprintf("Customer: %s\nContact: %s\nService: %s\nDate: %s\nTime: %s\nStatus: %s",
			b.CustomerName, b.Contact, b.Service, b.Date, b.Time, b.Status),
	}
}

// check maps rule failures to the first applicable sentinel: missing fields
// win over malformed date/time, which win over length limits.
func check(req *SubmitRequest) error {
	failures := validator.Check(req)
	if len(failures) == 0 {
		return nil
	}

	fields := make(map[string]string, len(failures))
	kind := ErrFieldTooLong
	rank := 0
	for _, f := range failures {
		fields[f.Field] = f.Message
		switch f.Tag {
		case "required":
			kind, rank = ErrMissingFields, 2
		case "booking_date", "booking_time":
			if rank < 1 {
				kind, rank = ErrInvalidDateTime, 1
			}
		}
	}
	return &ValidationError{Err: kind, Fields: fields}
}

// List returns bookings ordered by date then time, optionally filtered by status.
func (s *Service) List(ctx context.Context, status *Status) ([]*Booking, error) {
	return s.repo.List(ctx, status)
}

// Approve marks a booking Approved on behalf of actor. A missing id is not an error.
func (s *Service) Approve(ctx context.Context, actor string, id int64) error {
	return s.transition(ctx, actor, id, StatusApproved)
}

// Cancel marks a booking Cancelled on behalf of actor. A missing id is not an error.
func (s *Service) Cancel(ctx context.Context, actor string, id int64) error {
	return s.transition(ctx, actor, id, StatusCancelled)
}

// transition overwrites the status whatever it was before; the last write wins.
func (s *Service) transition(ctx context.Context, actor string, id int64, status Status) error {
	n, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	metrics.IncBookingTransition(string(status))

	event := logger.FromContext(ctx).Info()
	if n == 0 {
		event = logger.FromContext(ctx).Debug()
	}
	event.Int64("booking_id", id).
		Str("admin", actor).
		Str("status", string(status)).
		Int64("rows", n).
		Msg("Booking status updated")
	return nil
}
