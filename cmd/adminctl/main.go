// Command adminctl manages administrator credentials and the database schema.
//
//	adminctl seed [-username admin] [-password pw]
//	adminctl set-password -username admin [-password pw]
//	adminctl check [-username admin] [-password pw]
//	adminctl migrate
//
// When -password is omitted the ADMIN_PASSWORD environment variable is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nailbooker/nailbooker/internal/config"
	"github.com/nailbooker/nailbooker/internal/domain/admin"
	"github.com/nailbooker/nailbooker/internal/pkg/database"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/password"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}

	svc := admin.NewService(admin.NewRepository(db))
	if err := run(ctx, svc, cfg, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("Command failed")
		os.Exit(1)
	}
}

// credentialStore is the part of admin.Service used by the commands.
type credentialStore interface {
	Seed(ctx context.Context, username, pwd string) (*admin.Admin, error)
	SetPassword(ctx context.Context, username, pwd string) error
	Inspect(ctx context.Context, username string) (*admin.Admin, error)
	Login(ctx context.Context, username, pwd string) (*admin.Admin, error)
}

var errUsage = errors.New("usage")

func run(ctx context.Context, svc credentialStore, cfg *config.Config, cmd string, args []string, out io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(out)
	username := fs.String("username", cfg.AdminSeedUsername, "admin username")
	pwd := fs.String("password", "", "admin password (default $ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *pwd == "" {
		*pwd = os.Getenv("ADMIN_PASSWORD")
	}

	switch cmd {
	case "migrate":
		fmt.Fprintln(out, "Schema is up to date.")
		return nil

	case "seed":
		if *pwd == "" {
			*pwd = cfg.AdminSeedPassword
		}
		a, err := svc.Seed(ctx, *username, *pwd)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin %q created (id %d).\n", a.Username, a.ID)
		return nil

	case "set-password":
		if err := svc.SetPassword(ctx, *username, *pwd); err != nil {
			return err
		}
		fmt.Fprintf(out, "Password for %q updated.\n", *username)
		return nil

	case "check":
		a, err := svc.Inspect(ctx, *username)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin %q (id %d, created %s)\n", a.Username, a.ID, a.CreatedAt.Format(time.RFC3339))
		if !password.LooksHashed(a.PasswordHash) {
			fmt.Fprintln(out, "WARNING: stored password is not a bcrypt hash; run set-password.")
		}
		if *pwd != "" {
			if _, err := svc.Login(ctx, *username, *pwd); err != nil {
				fmt.Fprintln(out, "Password does NOT match.")
				return err
			}
			fmt.Fprintln(out, "Password matches.")
		}
		return nil

	default:
		usage(out)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: adminctl <seed|set-password|check|migrate> [-username name] [-password pw]")
}
