package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gatherly/potluck/internal/cache"
	"github.com/gatherly/potluck/internal/config"
	"github.com/gatherly/potluck/internal/database"
	"github.com/gatherly/potluck/internal/ident"
	"github.com/gatherly/potluck/internal/model"
	"github.com/gatherly/potluck/internal/service"
	"github.com/gatherly/potluck/internal/store"
)

// session supplies the configured local user to the engine.
type session struct {
	user model.User
}

func (s session) CurrentUser() model.User { return s.user }

func main() {
	// Load .env file if present; environment variables win otherwise
	if err := godotenv.Load(); err == nil {
		slog.Info(".env file loaded")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Initialize database connection. A failed connection is not
	// fatal: the stores fall back to the local cache until the
	// remote comes back.
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Warn("remote database unavailable, running from cache",
			slog.String("host", cfg.Database.Host),
			slog.String("error", err.Error()))
	} else {
		slog.Info("connected to database",
			slog.String("host", cfg.Database.Host),
			slog.String("database", cfg.Database.Database))
		defer func() { _ = db.Close() }()
	}

	// Open the local snapshot cache
	snaps, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		slog.Error("failed to open cache", slog.String("path", cfg.Cache.Path), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = snaps.Close() }()

	// Wire the dual-tier stores. Items are local-only and carry no
	// remote tier.
	stores := service.Stores{
		Events:    store.NewFallback(store.NewRemote(db, store.EventCodec), store.NewCached(snaps, store.EventCodec), store.EventCodec, logger),
		Guests:    store.NewFallback(store.NewRemote(db, store.GuestCodec), store.NewCached(snaps, store.GuestCodec), store.GuestCodec, logger),
		Dishes:    store.NewFallback(store.NewRemote(db, store.DishCodec), store.NewCached(snaps, store.DishCodec), store.DishCodec, logger),
		Items:     store.NewFallback[model.Item](nil, store.NewCached(snaps, store.ItemCodec), store.ItemCodec, logger),
		Messages:  store.NewFallback(store.NewRemote(db, store.MessageCodec), store.NewCached(snaps, store.MessageCodec), store.MessageCodec, logger),
		Templates: store.NewFallback(store.NewRemote(db, store.TemplateCodec), store.NewCached(snaps, store.TemplateCodec), store.TemplateCodec, logger),
	}

	policy := ident.PolicyDegrade
	if cfg.Codes.Strict {
		policy = ident.PolicyStrict
	}
	codes := ident.New(ident.Config{
		CodeLength:  cfg.Codes.Length,
		MaxAttempts: cfg.Codes.MaxAttempts,
		OnExhausted: policy,
	})

	identity := session{user: model.User{
		ID:    cfg.Session.UserID,
		Email: cfg.Session.Email,
		Name:  cfg.Session.Name,
	}}

	// Assemble the engine
	party := service.NewPartyService(stores, codes, identity, logger)
	templates := service.NewTemplateService(party, logger)

	party.Watch(func(e model.Event) {
		logger.Debug("event updated",
			slog.String("event_id", e.ID),
			slog.Int("guests", len(e.Guests)),
			slog.Int("dishes", len(e.Dishes)))
	})

	// Initial load: hosted events, memberships, or a starter event
	events, err := party.Refresh(ctx)
	if err != nil {
		slog.Error("initial refresh failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	visible, err := templates.Templates(ctx)
	if err != nil {
		slog.Warn("template listing failed", slog.String("error", err.Error()))
	}
	slog.Info("engine ready",
		slog.Int("events", len(events)),
		slog.Int("templates", len(visible)),
		slog.String("user", cfg.Session.UserID))

	// Periodic refresh until interrupted
	ticker := time.NewTicker(cfg.App.RefreshInterval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			if _, err := party.Refresh(ctx); err != nil {
				slog.Warn("refresh failed", slog.String("error", err.Error()))
			}
		case <-quit:
			slog.Info("shutting down")
			return
		}
	}
}
