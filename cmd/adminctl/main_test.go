package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nailbooker/nailbooker/internal/config"
	"github.com/nailbooker/nailbooker/internal/domain/admin"
)

type fakeStore struct {
	admins map[string]string
}

func (f *fakeStore) Seed(_ context.Context, username, pwd string) (*admin.Admin, error) {
	if _, ok := f.admins[username]; ok {
		return nil, admin.ErrUsernameTaken
	}
	f.admins[username] = pwd
	return &admin.Admin{ID: int64(len(f.admins)), Username: username}, nil
}

func (f *fakeStore) SetPassword(_ context.Context, username, pwd string) error {
	if _, ok := f.admins[username]; !ok {
		return admin.ErrAdminNotFound
	}
	f.admins[username] = pwd
	return nil
}

func (f *fakeStore) Inspect(_ context.Context, username string) (*admin.Admin, error) {
	if _, ok := f.admins[username]; !ok {
		return nil, admin.ErrAdminNotFound
	}
	return &admin.Admin{ID: 1, Username: username, PasswordHash: "$2a$12$abcdefghijklmnopqrstuv", CreatedAt: time.Now()}, nil
}

func (f *fakeStore) Login(_ context.Context, username, pwd string) (*admin.Admin, error) {
	if stored, ok := f.admins[username]; !ok || stored != pwd {
		return nil, admin.ErrInvalidCredentials
	}
	return &admin.Admin{Username: username}, nil
}

func TestRunCommands(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	store := &fakeStore{admins: map[string]string{}}
	cfg := &config.Config{AdminSeedUsername: "admin", AdminSeedPassword: "bootstrap"}
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, store, cfg, "seed", nil, &out); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if store.admins["admin"] != "bootstrap" {
		t.Fatal("seed must fall back to the configured password")
	}

	if err := run(ctx, store, cfg, "seed", nil, &out); !errors.Is(err, admin.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	if err := run(ctx, store, cfg, "set-password", []string{"-password", "rotated"}, &out); err != nil {
		t.Fatalf("set-password: %v", err)
	}

	out.Reset()
	if err := run(ctx, store, cfg, "check", []string{"-password", "rotated"}, &out); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "Password matches.") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if err := run(ctx, store, cfg, "check", []string{"-password", "bootstrap"}, &out); !errors.Is(err, admin.ErrInvalidCredentials) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &fakeStore{admins: map[string]string{}}, &config.Config{}, "drop", nil, &out)
	if !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
