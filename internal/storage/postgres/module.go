package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/config"
	"github.com/polkiloo/cvorders/internal/domain/repository"
)

// Module wires PostgreSQL storage and exposes each repository to the graph.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) repository.Factory { return s }),
	fx.Provide(newRepositories),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	opts := []Option{WithMaxConns(p.Config.DBMaxConns)}
	if !p.Config.AutoMigrate {
		opts = append(opts, WithoutMigrations())
	}
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger, opts...)
}

type repositories struct {
	fx.Out

	Users    repository.UserRepository
	Orders   repository.OrderRepository
	Profiles repository.ProfileRepository
	Payments repository.PaymentRepository
	Sessions repository.SessionRepository
	Wizards  repository.WizardRepository
}

func newRepositories(f repository.Factory) repositories {
	return repositories{
		Users:    f.Users(),
		Orders:   f.Orders(),
		Profiles: f.Profiles(),
		Payments: f.Payments(),
		Sessions: f.Sessions(),
		Wizards:  f.Wizards(),
	}
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			storage.Close()
			logger.Info("database pool closed")
			return nil
		},
	})
}
