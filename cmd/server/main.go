// Command server runs the blood camp registration API. main wires
// configuration, storage, the background mail worker, and the HTTP router;
// business logic lives in the internal packages.
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

	"bloodcamp/internal/admin"
	adminservice "bloodcamp/internal/admin/service"
	adminstore "bloodcamp/internal/admin/store"
	"bloodcamp/internal/camp"
	campservice "bloodcamp/internal/camp/service"
	campstore "bloodcamp/internal/camp/store"
	"bloodcamp/internal/donor"
	donorservice "bloodcamp/internal/donor/service"
	donorstore "bloodcamp/internal/donor/store"
	"bloodcamp/internal/httpapi"
	"bloodcamp/internal/notify"
	"bloodcamp/internal/platform/config"
	"bloodcamp/internal/platform/db"
	"bloodcamp/internal/platform/httpserver"
	"bloodcamp/internal/platform/logger"
	"bloodcamp/internal/platform/ratelimit"
	platformredis "bloodcamp/internal/platform/redis"
	"bloodcamp/internal/registration"
	registrationhandler "bloodcamp/internal/registration/handler"
	registrationmetrics "bloodcamp/internal/registration/metrics"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		campStore  campservice.Store
		donorStore fullDonorStore
		adminStore adminservice.Store
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("database connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := db.Migrate(ctx, pool); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		campStore = campstore.NewPostgres(pool)
		donorStore = donorstore.NewPostgres(pool)
		adminStore = adminstore.NewPostgres(pool)
		log.Info("using postgres storage")
	} else {
		campStore = campstore.NewInMemory()
		donorStore = donorstore.NewInMemory()
		adminStore = adminstore.NewInMemory()
		log.Warn("DATABASE_URL not set, using in-memory storage")
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var counterStore ratelimit.CounterStore
	if redisClient != nil {
		counterStore = ratelimit.NewRedisStore(redisClient.Client)
	} else {
		counterStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.New(counterStore, cfg.RegistrationRateLimit, cfg.RegistrationRateWindow, log)

	tokens := admin.NewTokenService(cfg.JWTSigningKey, admin.DefaultTokenTTL)
	adminSvc := admin.NewService(adminStore, tokens, log)
	if err := adminSvc.Bootstrap(ctx, admin.BootstrapConfig{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}); err != nil {
		log.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	var mailer notify.Mailer
	if m := notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Password); m != nil {
		mailer = m
	} else {
		log.Warn("SMTP_HOST not set, confirmation mail disabled")
	}
	dispatcher := notify.NewDispatcher(mailer, cfg.NotifyBuffer, log)

	campSvc := camp.NewService(campStore, log)
	donorSvc := donor.NewService(donorStore, log)
	coordinator := registration.NewCoordinator(campSvc, donorStore, dispatcher, registrationmetrics.New(), log)

	router := httpapi.New(httpapi.Deps{
		Registration: registrationhandler.New(coordinator, log),
		Camps:        camp.NewHandler(campSvc, log),
		Donors:       donor.NewHandler(donorSvc, log),
		Admin:        admin.NewHandler(adminSvc, log),
		Tokens:       tokens,
		Limiter:      limiter,
		Logger:       log,
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting bloodcamp server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		err := dispatcher.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// fullDonorStore is the union of what the coordinator and the admin donor
// service need from donor persistence.
type fullDonorStore interface {
	registration.DonorStore
	donorservice.Store
}
