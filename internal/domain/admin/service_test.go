package admin

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nailbooker/nailbooker/internal/pkg/password"
)

type fakeRepo struct {
	mu     sync.Mutex
	admins map[string]*Admin
	nextID int64
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{admins: make(map[string]*Admin)}
}

func (f *fakeRepo) Create(_ context.Context, a *Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.admins[a.Username]; ok {
		return ErrUsernameTaken
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	cp := *a
	f.admins[a.Username] = &cp
	return nil
}

func (f *fakeRepo) GetByUsername(_ context.Context, username string) (*Admin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.admins[username]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) UpdatePassword(_ context.Context, username, hash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	a, ok := f.admins[username]
	if !ok {
		return 0, nil
	}
	a.PasswordHash = hash
	return 1, nil
}

func seeded(t *testing.T, username, pwd string) (*Service, *fakeRepo) {
	t.Helper()
	repo := newFakeRepo()
	svc := NewService(repo)
	if _, err := svc.Seed(context.Background(), username, pwd); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc, repo
}

func TestLogin(t *testing.T) {
	svc, _ := seeded(t, "owner", "s3cret")
	ctx := context.Background()

	a, err := svc.Login(ctx, "owner", "s3cret")
	if err != nil {
		t.Fatalf("expected login to succeed: %v", err)
	}
	if a.Username != "owner" {
		t.Fatalf("unexpected admin %+v", a)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "owner", "nope"},
		{"unknown user", "ghost", "s3cret"},
		{"username is case sensitive", "Owner", "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginPropagatesStoreFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("connection refused")
	svc := NewService(repo)

	_, err := svc.Login(context.Background(), "owner", "pw")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestSeedStoresHash(t *testing.T) {
	_, repo := seeded(t, "owner", "s3cret")

	stored := repo.admins["owner"].PasswordHash
	if stored == "s3cret" || !password.LooksHashed(stored) {
		t.Fatalf("expected bcrypt hash, got %q", stored)
	}
}

func TestSeedRejectsDuplicateAndEmpty(t *testing.T) {
	svc, _ := seeded(t, "owner", "s3cret")
	ctx := context.Background()

	if _, err := svc.Seed(ctx, "owner", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, err := svc.Seed(ctx, "  ", "pw"); !errors.Is(err, ErrEmptyUsername) {
		t.Fatalf("expected ErrEmptyUsername, got %v", err)
	}
	if _, err := svc.Seed(ctx, "second", ""); !errors.Is(err, password.ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestSetPassword(t *testing.T) {
	svc, _ := seeded(t, "owner", "old")
	ctx := context.Background()

	if err := svc.SetPassword(ctx, "owner", "new"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if _, err := svc.Login(ctx, "owner", "old"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password must stop working")
	}
	if _, err := svc.Login(ctx, "owner", "new"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}

	if err := svc.SetPassword(ctx, "ghost", "pw"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	svc, _ := seeded(t, "owner", "pw")

	if _, err := svc.Inspect(context.Background(), "ghost"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
	a, err := svc.Inspect(context.Background(), "owner")
	if err != nil || a.ID == 0 {
		t.Fatalf("unexpected inspect result %+v %v", a, err)
	}
}
