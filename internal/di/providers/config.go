// Package providers contains dependency injection providers for the LinkHive server.
package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/linkhive/linkhive-server/internal/config"
	"github.com/linkhive/linkhive-server/internal/logger"
	"github.com/linkhive/linkhive-server/internal/validation"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting LinkHive Server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"db_path", cfg.Database.Path,
	)

	return log, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}
