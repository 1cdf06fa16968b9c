package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/state"
	"github.com/basetic/osint-terminal/internal/store"
	"github.com/basetic/osint-terminal/internal/validation"
)

// testEnv bundles every service over one shared state instance.
type testEnv struct {
	state    *state.State
	bus      *events.Bus
	auth     *AuthService
	accounts *AccountService
	catalog  *CatalogService
	members  *MemberService
}

func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	bus := events.New(logger, 20*time.Millisecond)

	testStore, err := store.New(filepath.Join(t.TempDir(), "db"), nil, bus)
	require.NoError(t, err)

	testState, err := state.New(testStore, bus, logger, 0)
	require.NoError(t, err)

	validator := validation.New()
	engine := catalog.NewEngine()

	env := &testEnv{
		state:    testState,
		bus:      bus,
		auth:     NewAuthService(testState, bus, logger),
		accounts: NewAccountService(testState, bus, validator, logger),
		catalog:  NewCatalogService(testState, engine, bus, validator, logger),
		members:  NewMemberService(testState, bus, validator, logger),
	}

	t.Cleanup(func() {
		_ = testState.Close() //nolint:errcheck // Test cleanup
		bus.Close()
		_ = testStore.Close() //nolint:errcheck // Test cleanup
	})
	return env
}
