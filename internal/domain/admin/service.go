package admin

import (
	"context"
	"strings"

	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/password"
)

// Service handles admin credentials
type Service struct {
	repo Repository
}

// NewService creates admin service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login verifies a username/password pair. Unknown usernames and wrong
// passwords both yield ErrInvalidCredentials after the same bcrypt work.
func (s *Service) Login(ctx context.Context, username, pwd string) (*Admin, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if a == nil {
		password.BurnCompare(pwd)
		return nil, ErrInvalidCredentials
	}
	if !password.Verify(pwd, a.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// Seed inserts the initial administrator credential.
func (s *Service) Seed(ctx context.Context, username, pwd string) (*Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := password.Hash(pwd)
	if err != nil {
		return nil, err
	}

	a := &Admin{Username: username, PasswordHash: hash}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info().Str("username", username).Msg("Admin credential seeded")
	return a, nil
}

// SetPassword replaces the stored hash for username.
func (s *Service) SetPassword(ctx context.Context, username, pwd string) error {
	hash, err := password.Hash(pwd)
	if err != nil {
		return err
	}

	n, err := s.repo.UpdatePassword(ctx, username, hash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAdminNotFound
	}

	logger.FromContext(ctx).Info().Str("username", username).Msg("Admin password updated")
	return nil
}

// Inspect returns the stored record for username.
func (s *Service) Inspect(ctx context.Context, username string) (*Admin, error) {
	a, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAdminNotFound
	}
	return a, nil
}
