package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/config"
	"github.com/polkiloo/cvorders/internal/di"
	"github.com/polkiloo/cvorders/internal/storage/postgres"
)

const (
	migrateUp   = postgres.MigrateUp
	migrateDown = postgres.MigrateDown
)

func serve(parent context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		fx.Supply(config.Args(args)),
		di.Module(),
	)
	return run(ctx, app)
}

func run(ctx context.Context, app *fx.App) error {
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start application: %w", err)
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	if err := app.Stop(context.Background()); err != nil {
		return fmt.Errorf("failed to stop application: %w", err)
	}
	return nil
}

func migrateAction(direction postgres.MigrateDirection) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := postgres.Migrate(c.String("database-uri"), direction); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "migrations %s: done\n", direction)
		return nil
	}
}
