package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/basetic/osint-terminal/internal/catalog"
	"github.com/basetic/osint-terminal/internal/domain"
	domainerrors "github.com/basetic/osint-terminal/internal/errors"
	"github.com/basetic/osint-terminal/internal/events"
	"github.com/basetic/osint-terminal/internal/id"
	"github.com/basetic/osint-terminal/internal/state"
	"github.com/basetic/osint-terminal/internal/validation"
)

// MemberService handles member registration, login and administration. The
// member gate is independent from the operator gate; both sessions may be
// active at once.
type MemberService struct {
	state     *state.State
	bus       *events.Bus
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewMemberService creates a new member service.
func NewMemberService(st *state.State, bus *events.Bus, validator *validation.Validator, logger *slog.Logger) *MemberService {
	return &MemberService{
		state:     st,
		bus:       bus,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// SignupRequest contains member self-registration data.
type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Signup registers a new member. Username and email are unique,
// compared case-insensitively; members created through social login carry no
// username and are exempt from the username check. Registration does not
// authenticate; the new member signs in separately.
func (s *MemberService) Signup(req SignupRequest) (*domain.Member, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		s.bus.Notify(events.LevelError, "As senhas não coincidem!")
		return nil, domainerrors.Validation("As senhas não coincidem!")
	}

	members := s.state.Members()
	foldedUsername := catalog.Fold(strings.TrimSpace(req.Username))
	foldedEmail := catalog.Fold(strings.TrimSpace(req.Email))
	for _, member := range members {
		if member.Username != "" && catalog.Fold(member.Username) == foldedUsername {
			s.bus.Notify(events.LevelError, "Nome de usuário já em uso!")
			return nil, domainerrors.AlreadyExists("Nome de usuário já em uso!")
		}
		if catalog.Fold(member.Email) == foldedEmail {
			s.bus.Notify(events.LevelError, "E-mail já cadastrado!")
			return nil, domainerrors.AlreadyExists("E-mail já cadastrado!")
		}
	}

	member := domain.Member{
		ID:       id.MustGenerate("mem"),
		Name:     strings.TrimSpace(req.Name),
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
		JoinedAt: domain.FormatJoinedAt(s.now()),
	}
	s.state.UpdateMembers(append(members, member))
	s.bus.Notify(events.LevelInfo, "Cadastro realizado com sucesso!")
	s.logger.Info("member registered", slog.String("member_id", member.ID))
	return &member, nil
}

// Login authenticates a member by username or email plus password. Members
// created through social login have no password and cannot use this path.
func (s *MemberService) Login(identifier, password string) (*domain.Member, error) {
	folded := catalog.Fold(strings.TrimSpace(identifier))
	if folded != "" && password != "" {
		for _, member := range s.state.Members() {
			matches := (member.Username != "" && catalog.Fold(member.Username) == folded) ||
				catalog.Fold(member.Email) == folded
			if matches && member.Password != "" && member.Password == password {
				s.state.SetCurrentMember(&member)
				s.logger.Info("member signed in", slog.String("member_id", member.ID))
				return &member, nil
			}
		}
	}

	s.bus.Notify(events.LevelError, "Credenciais inválidas!")
	return nil, domainerrors.InvalidCredentials("Credenciais inválidas!")
}

// SocialLogin finds or creates a member by email and signs them in. Members
// created here have neither username nor password.
func (s *MemberService) SocialLogin(name, email string) (*domain.Member, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, domainerrors.Validation("nome e e-mail são obrigatórios")
	}

	members := s.state.Members()
	folded := catalog.Fold(email)
	var member *domain.Member
	for i := range members {
		if catalog.Fold(members[i].Email) == folded {
			member = &members[i]
			break
		}
	}

	if member == nil {
		created := domain.Member{
			ID:       id.MustGenerate("mem"),
			Name:     name,
			Email:    email,
			JoinedAt: domain.FormatJoinedAt(s.now()),
		}
		s.state.UpdateMembers(append(members, created))
		member = &created
		s.logger.Info("member created via social login", slog.String("member_id", member.ID))
	}

	s.state.SetCurrentMember(member)
	s.bus.Notify(events.LevelInfo,
		fmt.Sprintf("Bem-vindo, %s! Você agora tem acesso à Área de Membros.", member.Name))
	return member, nil
}

// Logout clears the member session. Always succeeds.
func (s *MemberService) Logout() {
	s.state.SetCurrentMember(nil)
}

// Current returns the signed-in member, or nil.
func (s *MemberService) Current() *domain.Member {
	return s.state.CurrentMember()
}

// Remove deletes a member. An active session for the removed member is
// cleared.
func (s *MemberService) Remove(memberID string) error {
	members := s.state.Members()
	idx := -1
	for i, member := range members {
		if member.ID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domainerrors.NotFoundf("membro %s não encontrado", memberID)
	}

	s.state.UpdateMembers(append(members[:idx], members[idx+1:]...))
	if current := s.state.CurrentMember(); current != nil && current.ID == memberID {
		s.state.SetCurrentMember(nil)
	}
	s.logger.Info("member removed", slog.String("member_id", memberID))
	return nil
}

// List returns every registered member.
func (s *MemberService) List() []domain.Member {
	return s.state.Members()
}
