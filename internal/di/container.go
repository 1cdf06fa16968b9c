// Package di provides dependency injection configuration for the terminal.
package di

import (
	"github.com/samber/do/v2"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/config"
	"github.com/basetic/osint-terminal/internal/di/providers"
	"github.com/basetic/osint-terminal/internal/logger"
	"github.com/basetic/osint-terminal/internal/offline"
	"github.com/basetic/osint-terminal/internal/service"
	"github.com/basetic/osint-terminal/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideBus)
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideState)

	// Catalog layer
	do.Provide(injector, providers.ProvideFilterEngine)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideAccountService)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideMemberService)

	// Offline support
	do.Provide(injector, providers.ProvideOfflineCache)
	do.Provide(injector, providers.ProvideFetcher)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.BusHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.StateHandle](injector)
	_ = do.MustInvoke[*catalog.Engine](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.AccountService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.MemberService](injector)

	// Offline support
	_ = do.MustInvoke[*offline.Cache](injector)
	_ = do.MustInvoke[*offline.Fetcher](injector)

	return nil
}
