package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/renovatepro/renovate-api/internal/core/service"
	mongostore "github.com/renovatepro/renovate-api/internal/infrastructure/db/mongo"
	"github.com/renovatepro/renovate-api/internal/pkg/config"
	"github.com/renovatepro/renovate-api/pkg/logger"
)

func runPromote(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "renovate-cli"})

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	user, err := service.NewUserService(mongostore.NewUserRepository(db), log).PromoteToAdmin(ctx, promoteEmail)
	if err != nil {
		return fmt.Errorf("promote %s: %w", promoteEmail, err)
	}

	cmd.Printf("%s (%s) is now an admin\n", user.Email, user.ID)
	return nil
}
