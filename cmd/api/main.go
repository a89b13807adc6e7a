package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nailbooker/nailbooker/internal/catalog"
	"github.com/nailbooker/nailbooker/internal/config"
	"github.com/nailbooker/nailbooker/internal/domain/admin"
	"github.com/nailbooker/nailbooker/internal/domain/booking"
	"github.com/nailbooker/nailbooker/internal/pkg/database"
	"github.com/nailbooker/nailbooker/internal/pkg/email"
	"github.com/nailbooker/nailbooker/internal/pkg/logger"
	"github.com/nailbooker/nailbooker/internal/pkg/metrics"
	"github.com/nailbooker/nailbooker/internal/pkg/notify"
	"github.com/nailbooker/nailbooker/internal/pkg/session"
	"github.com/nailbooker/nailbooker/internal/web"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	})
	metrics.Register()

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting NailBooker")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply schema")
	}
	cancelMigrate()

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load service catalog")
	}

	// ---------- Sessions ----------
	var store session.Store = session.NewMemoryStore()
	if redis != nil {
		store = session.NewRedisStore(redis)
	}
	sessions := session.NewManager(store, session.NewTokenCodec(sessionSecret(cfg), cfg.SessionTTL), session.Options{
		TTL:    cfg.SessionTTL,
		Secure: cfg.SessionCookieSecure,
	})

	// ---------- Notifications ----------
	dispatcher := notify.NewDispatcher(notificationChannels(cfg), 100)
	defer dispatcher.Close()

	// ---------- Services ----------
	bookingService := booking.NewService(booking.NewRepository(db), cat, dispatcher)
	adminService := admin.NewService(admin.NewRepository(db))

	renderer, err := web.NewRenderer(sessions)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// ---------- Router ----------
	r := newRouter(routerDeps{
		sessions:       sessions,
		bookingHandler: booking.NewHandler(bookingService, renderer, sessions),
		apiHandler:     booking.NewAPIHandler(bookingService),
		adminHandler: admin.NewHandler(adminService, renderer, sessions, admin.SeedCredentials{
			Username: cfg.AdminSeedUsername,
			Password: cfg.AdminSeedPassword,
		}),
		allowedOrigins: cfg.AllowedOrigins,
		seedEnabled:    cfg.SeedRouteAllowed(),
		pingDB:         db.PingContext,
	})

	if cfg.SeedRouteAllowed() {
		log.Warn().Msg("Bootstrap route /seed-admin is enabled")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

// sessionSecret returns the configured signing secret. Outside production a
// random one is generated, which logs everybody out on restart.
func sessionSecret(cfg *config.Config) string {
	if cfg.SessionSecret != "" {
		return cfg.SessionSecret
	}
	if cfg.IsProduction() {
		log.Fatal().Msg("SESSION_SECRET must be set in production")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate session secret")
	}
	log.Warn().Msg("SESSION_SECRET not set, using a random secret")
	return hex.EncodeToString(buf)
}

func notificationChannels(cfg *config.Config) []notify.Channel {
	var channels []notify.Channel

	if cfg.SMTPEnabled() {
		from := cfg.SMTPFrom
		if from == "" {
			from = cfg.SMTPUsername
		}
		sender := email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			UseSSL:   cfg.SMTPUseSSL,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     from,
		})
		channels = append(channels, notify.NewEmailChannel(sender, cfg.NotifyEmail))
	}

	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramChannel(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Error().Err(err).Msg("Telegram notifications disabled")
		} else {
			channels = append(channels, tg)
		}
	}

	if len(channels) == 0 {
		log.Info().Msg("No notification transport configured")
	}
	return channels
}
