// Package di provides dependency injection configuration for the LinkHive server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/linkhive/linkhive-server/internal/config"
	"github.com/linkhive/linkhive-server/internal/di/providers"
	"github.com/linkhive/linkhive-server/internal/logger"
	"github.com/linkhive/linkhive-server/internal/service"
	"github.com/linkhive/linkhive-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Business services
	do.Provide(injector, providers.ProvideBookmarkService)
	do.Provide(injector, providers.ProvideTagService)
	do.Provide(injector, providers.ProvideTransferService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.BookmarkService](injector)
	_ = do.MustInvoke[*service.TagService](injector)
	_ = do.MustInvoke[*service.TransferService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
