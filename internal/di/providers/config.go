// Package providers contains dependency injection providers for the Shenava client core.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/shenavaapp/shenava-client/internal/config"
	"github.com/shenavaapp/shenava-client/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig(config.ParseFlags())
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Shenava client core",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"backend_url", cfg.Backend.BaseURL,
		"data_path", cfg.Storage.DataPath,
	)

	return log, nil
}
