// Package service implements the application's operations over the shared
// state: authentication gates, catalog management, member registration,
// import and export.
package service

import (
	"log/slog"

	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/state"
)

// AuthService handles operator authentication. Operator and member sessions
// are independent gates; see MemberService for the latter.
type AuthService struct {
	state  *state.State
	bus    *events.Bus
	logger *slog.Logger
}

// NewAuthService creates a new operator authentication service.
func NewAuthService(st *state.State, bus *events.Bus, logger *slog.Logger) *AuthService {
	return &AuthService{state: st, bus: bus, logger: logger}
}

// Login authenticates an operator by exact username and password match.
// Credentials are plain text end to end; the terminal targets a trusted
// local environment.
func (s *AuthService) Login(username, password string) (*domain.Account, error) {
	for _, account := range s.state.Accounts() {
		if account.Username == username && account.Password == password {
			s.state.SetCurrentAccount(&account)
			s.logger.Info("operator signed in", slog.String("username", account.Username))
			return &account, nil
		}
	}

	s.bus.Notify(events.LevelError, "Credenciais inválidas!")
	return nil, domainerrors.InvalidCredentials("Credenciais inválidas!")
}

// Logout clears the operator session. Always succeeds.
func (s *AuthService) Logout() {
	s.state.SetCurrentAccount(nil)
}

// Current returns the signed-in operator account, or nil.
func (s *AuthService) Current() *domain.Account {
	return s.state.CurrentAccount()
}
