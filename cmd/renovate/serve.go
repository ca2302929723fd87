package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/renovatepro/renovate-api/internal/api"
	"github.com/renovatepro/renovate-api/internal/api/handler"
	"github.com/renovatepro/renovate-api/internal/core/authz"
	"github.com/renovatepro/renovate-api/internal/core/service"
	mongostore "github.com/renovatepro/renovate-api/internal/infrastructure/db/mongo"
	redisstore "github.com/renovatepro/renovate-api/internal/infrastructure/db/redis"
	"github.com/renovatepro/renovate-api/internal/pkg/config"
	"github.com/renovatepro/renovate-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "renovate-api",
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("mongodb unavailable")
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongostore.NewUserRepository(db)
	orders := mongostore.NewOrderRepository(db)
	events := mongostore.NewOrderEventRepository(db)
	services := mongostore.NewServiceRepository(db)
	portfolio := mongostore.NewPortfolioRepository(db)

	if err := mongostore.EnsureIndexes(ctx, users, orders, events, services, portfolio); err != nil {
		log.Error().Err(err).Msg("failed to create indexes")
		return err
	}

	checks := map[string]handler.HealthCheck{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	var authOpts []service.AuthOption
	if cfg.Auth.RevocationEnabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error().Err(err).Msg("redis unavailable")
			return err
		}
		defer rdb.Close()

		authOpts = append(authOpts, service.WithRevoker(redisstore.NewRevocationStore(rdb)))
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("session revocation disabled, logout only clears the cookie")
	}

	policy := authz.OrderPolicy{StrictTransitions: cfg.Order.StrictTransitions}

	e := api.NewRouter(api.Deps{
		Auth:               service.NewAuthService(users, cfg.JWTSecret, cfg.SessionTTL, log, authOpts...),
		Orders:             service.NewOrderService(orders, events, services, policy, log),
		Catalog:            service.NewCatalogService(services, log),
		Portfolio:          service.NewPortfolioService(portfolio, log),
		Users:              service.NewUserService(users, log),
		HealthChecks:       checks,
		Log:                log,
		SecureCookie:       cfg.IsProduction(),
		SessionTTL:         cfg.SessionTTL,
		CORSOrigins:        cfg.CORSOrigins,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
		LoginBurst:         cfg.Auth.LoginBurst,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Bool("strict_transitions", cfg.Order.StrictTransitions).
			Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("http server failed")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
