// Package providers contains dependency injection providers for the terminal.
package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/basetic/osint-terminal/internal/config"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/logger"
	"github.com/basetic/osint-terminal/internal/state"
	"github.com/basetic/osint-terminal/internal/store"
	"github.com/basetic/osint-terminal/internal/validation"
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
		Environment: cfg.App.Environment,
	})

	log.Info("Starting Base TI OSINT terminal",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Store.DataPath,
	)

	return log, nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// BusHandle wraps the event bus with shutdown capability.
type BusHandle struct {
	*events.Bus
}

// Shutdown implements do.Shutdownable.
func (h *BusHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideBus provides the in-process event bus.
func ProvideBus(i do.Injector) (*BusHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &BusHandle{Bus: events.New(log.Logger, cfg.State.NoticeDelay)}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the embedded database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	busHandle := do.MustInvoke[*BusHandle](i)

	dbPath := filepath.Join(cfg.Store.DataPath, "db")
	db, err := store.New(dbPath, log.Logger, busHandle.Bus)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbPath)
	return &StoreHandle{Store: db}, nil
}

// StateHandle wraps the application state with shutdown capability.
type StateHandle struct {
	*state.State
}

// Shutdown implements do.Shutdownable.
func (h *StateHandle) Shutdown() error {
	return h.Close()
}

// ProvideState provides the shared application state. Creating it runs the
// seed reconciliation pass against the persisted data.
func ProvideState(i do.Injector) (*StateHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	busHandle := do.MustInvoke[*BusHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	st, err := state.New(storeHandle.Store, busHandle.Bus, log.Logger, cfg.State.FlushDelay)
	if err != nil {
		return nil, err
	}

	log.Info("Application state loaded", "version", st.Version(), "origin", st.Origin())
	return &StateHandle{State: st}, nil
}
