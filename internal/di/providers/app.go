package providers

import (
	"github.com/samber/do/v2"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/config"
	"github.com/basetic/osint-terminal/internal/logger"
	"github.com/basetic/osint-terminal/internal/offline"
	"github.com/basetic/osint-terminal/internal/service"
	"github.com/basetic/osint-terminal/internal/validation"
)

// ProvideFilterEngine provides the memoizing catalog filter.
func ProvideFilterEngine(i do.Injector) (*catalog.Engine, error) {
	return catalog.NewEngine(), nil
}

// ProvideAuthService provides operator authentication.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	stateHandle := do.MustInvoke[*StateHandle](i)
	busHandle := do.MustInvoke[*BusHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(stateHandle.State, busHandle.Bus, log.Logger), nil
}

// ProvideAccountService provides operator account management.
func ProvideAccountService(i do.Injector) (*service.AccountService, error) {
	stateHandle := do.MustInvoke[*StateHandle](i)
	busHandle := do.MustInvoke[*BusHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAccountService(stateHandle.State, busHandle.Bus, validator, log.Logger), nil
}

// ProvideCatalogService provides tool and category management.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	stateHandle := do.MustInvoke[*StateHandle](i)
	engine := do.MustInvoke[*catalog.Engine](i)
	busHandle := do.MustInvoke[*BusHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(stateHandle.State, engine, busHandle.Bus, validator, log.Logger), nil
}

// ProvideMemberService provides member registration and login.
func ProvideMemberService(i do.Injector) (*service.MemberService, error) {
	stateHandle := do.MustInvoke[*StateHandle](i)
	busHandle := do.MustInvoke[*BusHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMemberService(stateHandle.State, busHandle.Bus, validator, log.Logger), nil
}

// ProvideOfflineCache provides the file-backed asset cache.
func ProvideOfflineCache(i do.Injector) (*offline.Cache, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return offline.OpenCache(cfg.Offline.CachePath, log.Logger)
}

// ProvideFetcher provides the policy-driven asset fetcher.
func ProvideFetcher(i do.Injector) (*offline.Fetcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	cache := do.MustInvoke[*offline.Cache](i)
	log := do.MustInvoke[*logger.Logger](i)

	appHosts := []string{"localhost", "127.0.0.1"}
	return offline.NewFetcher(nil, cache, appHosts, cfg.Offline.LibraryHosts, log.Logger), nil
}
