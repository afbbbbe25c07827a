package app

import (
	"context"
	"strings"

	"github.com/MarcusVRdoN/portal-de-cotacoes/services/api/internal/domain"
)

type AuthGateway interface {
	SignIn(ctx context.Context, email, password string) (domain.Session, domain.User, error)
	SignUp(ctx context.Context, u domain.User, password string) (domain.User, error)
	Profile(ctx context.Context, sess domain.Session) (domain.User, error)
}

// AuthService fronts the backend's account endpoints. Tokens are issued by
// the backend; this service never signs one.
type AuthService struct {
	gateway AuthGateway
}

func NewAuthService(gateway AuthGateway) *AuthService {
	return &AuthService{gateway: gateway}
}

type LoginResult struct {
	Session domain.Session
	User    domain.User
}

func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return LoginResult{}, domain.ErrCredentialsRequired
	}
	sess, user, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: sess, User: user}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register creates a client or supplier account. Admin accounts cannot be
// self-registered.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.User{}, domain.ErrUserNameRequired
	}
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return domain.User{}, domain.ErrCredentialsRequired
	}
	role := domain.Role(strings.ToUpper(strings.TrimSpace(in.Role)))
	if role != domain.RoleClient && role != domain.RoleSupplier {
		return domain.User{}, domain.ErrInvalidRole
	}
	return s.gateway.SignUp(ctx, domain.User{Name: name, Email: email, Role: role}, in.Password)
}

func (s *AuthService) Profile(ctx context.Context, sess domain.Session) (domain.User, error) {
	if !sess.Authenticated() {
		return domain.User{}, domain.ErrUnauthorized
	}
	return s.gateway.Profile(ctx, sess)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
