package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/cvorders/internal/config"
)

// Module provides the event publisher and the staff stream hub.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Provide(newPublisher),
	fx.Invoke(registerHubLifecycle),
)

type publisherParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Hub       *Hub
}

func newPublisher(p publisherParams) (Publisher, error) {
	sinks := []Publisher{p.Hub}

	if len(p.Config.KafkaBrokers) > 0 {
		kafka, err := NewKafkaPublisher(p.Config.KafkaBrokers, p.Config.KafkaTopic)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{OnStop: func(context.Context) error { return kafka.Close() }})
		sinks = append(sinks, kafka)
		p.Logger.Info("kafka publisher enabled", slog.String("topic", p.Config.KafkaTopic))
	}

	if p.Config.RabbitMQURL != "" {
		rabbit, err := DialRabbit(p.Config.RabbitMQURL, p.Config.RabbitMQExchange)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{OnStop: func(context.Context) error { return rabbit.Close() }})
		sinks = append(sinks, rabbit)
		p.Logger.Info("rabbitmq publisher enabled", slog.String("exchange", p.Config.RabbitMQExchange))
	}

	return NewMulti(sinks...), nil
}

func newHub(cfg *config.Config, logger *slog.Logger) *Hub {
	return NewHub(logger, cfg.PublicBaseURL)
}

func registerHubLifecycle(lc fx.Lifecycle, hub *Hub) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go hub.Run(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
