package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/adapter/gateway"
	"github.com/polkiloo/cvorders/internal/app"
	"github.com/polkiloo/cvorders/internal/config"
	"github.com/polkiloo/cvorders/internal/events"
	"github.com/polkiloo/cvorders/internal/filestore"
	"github.com/polkiloo/cvorders/internal/logger"
	"github.com/polkiloo/cvorders/internal/pkg/auth"
	"github.com/polkiloo/cvorders/internal/server/http/handlers"
	"github.com/polkiloo/cvorders/internal/server/http/router"
	"github.com/polkiloo/cvorders/internal/session"
	"github.com/polkiloo/cvorders/internal/storage/postgres"
	"github.com/polkiloo/cvorders/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		events.Module,
		filestore.Module,
		gateway.Module,
		session.Module,
		usecase.Module,
		fx.Provide(
			func(a *session.Accessor) usecase.ActiveOrders { return a },
			func(s *filestore.Local) usecase.FileStore { return s },
			func(c gateway.Client) usecase.PaymentGateway { return c },
			func(cfg *config.Config) usecase.StaffDirectory { return cfg },
			func(cfg *config.Config) usecase.PaymentSettings {
				return usecase.PaymentSettings{Currency: cfg.PaymentCurrency, WebhookChallenge: cfg.WebhookChallenge}
			},
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.Facade) handlers.Facade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
