// Package session keeps per-browser state (admin flag, username, flash
// messages) on the server. The browser only carries a signed session id.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Flash categories.
const (
	FlashSuccess = "success"
	FlashDanger  = "danger"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is the persisted part of a session.
type Data struct {
	Admin    bool    `json:"admin"`
	Username string  `json:"username,omitempty"`
	Flashes  []Flash `json:"flashes,omitempty"`
}

func (d Data) clone() Data {
	out := d
	if d.Flashes != nil {
		out.Flashes = append([]Flash(nil), d.Flashes...)
	}
	return out
}

// Session is the state attached to one request.
type Session struct {
	ID string
	Data
}

// IsAdmin reports whether a login succeeded during this session's lifetime.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Admin
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(category, message string) {
	s.Flashes = append(s.Flashes, Flash{Category: category, Message: message})
}

// PopFlashes returns and clears queued messages.
func (s *Session) PopFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}

// Store persists session data by id.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type contextKey string

const sessionKey contextKey = "session"

// WithSession attaches s to ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the request session, or nil outside the session middleware.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey).(*Session)
	return s
}
