package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sypyx/certificatetrackermvp/internal/core/domain"
	"github.com/Sypyx/certificatetrackermvp/internal/core/ports"
)

// AuthService implements the login and registration workflows against the
// auth service. All calls are single-shot: no retry, no backoff.
type AuthService struct {
	identity ports.IdentityGateway
	log      zerolog.Logger
}

func NewAuthService(identity ports.IdentityGateway, log zerolog.Logger) *AuthService {
	return &AuthService{identity: identity, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return domain.Session{}, domain.ErrEmptyFields
	}

	session, err := s.identity.Login(ctx, username, password)
	if err != nil {
		return domain.Session{}, err
	}

	s.log.Info().Str("username", username).Str("role", session.Identity.Role).Msg("session established")
	return session, nil
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	in = trimRegisterInput(in)
	// The self-service form trims the password; the managed form keeps it
	// byte for byte.
	in.Password = strings.TrimSpace(in.Password)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return domain.ErrEmptyFields
	}

	// Self-registration always produces a regular user, whatever the caller
	// put in the role field.
	in.Role = domain.RoleUser
	return s.identity.Register(ctx, in)
}

func (s *AuthService) RegisterManaged(ctx context.Context, session domain.Session, in ports.RegisterInput) error {
	if !session.IsManager() {
		return domain.ErrForbidden
	}
	in = trimRegisterInput(in)
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return domain.ErrEmptyFields
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	return s.identity.RegisterManaged(ctx, session.Credential, in)
}

func trimRegisterInput(in ports.RegisterInput) ports.RegisterInput {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	return in
}
