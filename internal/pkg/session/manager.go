package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nailbooker/nailbooker/internal/pkg/logger"
)

const DefaultCookieName = "nb_session"

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager loads sessions for incoming requests and persists changes.
type Manager struct {
	store Store
	codec *TokenCodec
	opts  Options
}

// NewManager creates a session manager.
func NewManager(store Store, codec *TokenCodec, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 12 * time.Hour
	}
	return &Manager{store: store, codec: codec, opts: opts}
}

// Middleware attaches the caller's session to the request context. A missing,
// tampered or expired cookie yields a fresh unprivileged session.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.load(r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func (m *Manager) load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return m.fresh()
	}

	id, err := m.codec.Parse(cookie.Value)
	if err != nil {
		return m.fresh()
	}

	data, err := m.store.Load(r.Context(), id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.FromContext(r.Context()).Error().Err(err).Msg("Failed to load session")
		}
		return m.fresh()
	}
	return &Session{ID: id, Data: *data}
}

func (m *Manager) fresh() *Session {
	return &Session{ID: uuid.NewString()}
}

// Save persists s and (re)issues the cookie. Must run before the response
// header is written.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Save(ctx, s.ID, &s.Data, m.opts.TTL); err != nil {
		return err
	}

	value, err := m.codec.Sign(s.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Renew moves s to a new id and drops the old record, keeping its data.
// Called when privilege changes.
func (m *Manager) Renew(ctx context.Context, s *Session) error {
	old := s.ID
	s.ID = uuid.NewString()
	return m.store.Delete(ctx, old)
}

// Destroy clears every value in s and moves it to a new id.
func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	s.Data = Data{}
	return m.Renew(ctx, s)
}
