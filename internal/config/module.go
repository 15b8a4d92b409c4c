package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module loads configuration and logs the effective settings once the
// logger is available.
var Module = fx.Options(
	fx.Provide(Load),
	fx.Invoke(func(cfg *Config, logger *slog.Logger) {
		logger.Info("configuration loaded", slog.Any("config", cfg))
	}),
)
