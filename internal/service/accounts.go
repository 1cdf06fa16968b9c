package service

import (
	"log/slog"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/id"
	"github.com/basetic/osint-terminal/internal/state"
	"github.com/basetic/osint-terminal/internal/validation"
)

// AccountService manages operator accounts.
type AccountService struct {
	state     *state.State
	bus       *events.Bus
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAccountService creates a new operator account service.
func NewAccountService(st *state.State, bus *events.Bus, validator *validation.Validator, logger *slog.Logger) *AccountService {
	return &AccountService{state: st, bus: bus, validator: validator, logger: logger}
}

// AddAccountRequest contains the data for a new operator account.
type AddAccountRequest struct {
	Username string      `json:"username" validate:"required"`
	Password string      `json:"password" validate:"required"`
	Role     domain.Role `json:"role" validate:"omitempty,oneof=admin user"`
}

// Add creates an operator account. Usernames are unique, compared
// case-insensitively.
func (s *AccountService) Add(req AddAccountRequest) (*domain.Account, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = domain.RoleAdmin
	}

	accounts := s.state.Accounts()
	folded := catalog.Fold(req.Username)
	for _, account := range accounts {
		if catalog.Fold(account.Username) == folded {
			s.bus.Notify(events.LevelError, "Usuário já existe!")
			return nil, domainerrors.AlreadyExists("Usuário já existe!")
		}
	}

	account := domain.Account{
		ID:       id.MustGenerate("op"),
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	}
	s.state.UpdateAccounts(append(accounts, account))
	s.logger.Info("operator account created", slog.String("username", account.Username))
	return &account, nil
}

// UpdateAccountRequest contains the partial update for an operator account.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
}

// Update applies a partial update to an operator account.
func (s *AccountService) Update(accountID string, req UpdateAccountRequest) (*domain.Account, error) {
	accounts := s.state.Accounts()
	idx := -1
	for i, account := range accounts {
		if account.ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domainerrors.NotFoundf("conta %s não encontrada", accountID)
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, domainerrors.Validation("nome de usuário não pode ser vazio")
		}
		folded := catalog.Fold(*req.Username)
		for i, account := range accounts {
			if i != idx && catalog.Fold(account.Username) == folded {
				return nil, domainerrors.AlreadyExists("Usuário já existe!")
			}
		}
		accounts[idx].Username = *req.Username
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, domainerrors.Validation("senha não pode ser vazia")
		}
		accounts[idx].Password = *req.Password
	}

	s.state.UpdateAccounts(accounts)
	updated := accounts[idx]
	return &updated, nil
}

// Remove deletes an operator account. The last remaining account and the
// currently signed-in account cannot be removed; the collection must never
// become empty and an operator must never lock themselves out mid-session.
func (s *AccountService) Remove(accountID string) error {
	accounts := s.state.Accounts()
	idx := -1
	for i, account := range accounts {
		if account.ID == accountID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainerrors.NotFoundf("conta %s não encontrada", accountID)
	}

	if len(accounts) == 1 {
		s.bus.Notify(events.LevelError, "Impossível remover este usuário agora.")
		return domainerrors.Conflict("não é possível remover a última conta")
	}
	if current := s.state.CurrentAccount(); current != nil && current.ID == accountID {
		s.bus.Notify(events.LevelError, "Impossível remover este usuário agora.")
		return domainerrors.Forbidden("não é possível remover a conta autenticada")
	}

	s.state.UpdateAccounts(append(accounts[:idx], accounts[idx+1:]...))
	s.logger.Info("operator account removed", slog.String("account_id", accountID))
	return nil
}

// List returns every operator account.
func (s *AccountService) List() []domain.Account {
	return s.state.Accounts()
}
