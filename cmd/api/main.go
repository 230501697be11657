// Command api runs the HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"orghub_backend/internal/auth"
	authvalidator "orghub_backend/internal/auth/validator"
	domainevents "orghub_backend/internal/events"
	apphttp "orghub_backend/internal/http"
	"orghub_backend/internal/http/router"
	"orghub_backend/internal/identity"
	"orghub_backend/migrations"
	"orghub_backend/platform/config"
	"orghub_backend/platform/db"
	"orghub_backend/platform/events"
	"orghub_backend/platform/logger"
	"orghub_backend/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("production").Error("config load failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	if err := withRetry(ctx, 5, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		return err
	}
	log.Info("migrations applied")

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	bus := events.NewInMemoryBus(log)
	registerAuditSubscribers(bus, log)

	val := validator.New()
	if err := authvalidator.Register(val); err != nil {
		return err
	}

	authModule := auth.NewModule(pool, cfg, bus, log, val)
	identityModule := identity.NewModule(pool, bus, log, val)

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        db.NewPoolAdapter(pool),
		EventBus:      bus,
		TokenVerifier: authModule.Verifier(),
		Modules:       []apphttp.Module{authModule, identityModule},
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// withRetry retries fn with a fixed backoff; the database may still be coming
// up when the server starts.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return err
}

// registerAuditSubscribers logs every domain event for audit purposes.
func registerAuditSubscribers(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(domainevents.UserRegistered{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if evt, ok := e.(domainevents.UserRegistered); ok {
			log.Info("user registered", "user_id", evt.UserID, "email", evt.Email)
		}
		return nil
	}))

	bus.Subscribe(domainevents.OrganisationCreated{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if evt, ok := e.(domainevents.OrganisationCreated); ok {
			log.Info("organisation created", "org_id", evt.OrganisationID, "name", evt.Name, "created_by", evt.CreatedBy)
		}
		return nil
	}))

	bus.Subscribe(domainevents.MemberAdded{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if evt, ok := e.(domainevents.MemberAdded); ok {
			log.Info("member added", "org_id", evt.OrganisationID, "user_id", evt.UserID, "added_by", evt.AddedBy)
		}
		return nil
	}))
}
