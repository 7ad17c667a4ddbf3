package auth

import (
	"context"
	"errors"
	"strings"

	"skill-exchange/internal/domain/user"
	"skill-exchange/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const minPasswordLength = 8

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Profile  user.ProfileUpdate
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is a signed-in user and the bearer token issued for them.
type Session struct {
	User        user.User
	AccessToken string
}

type Service struct {
	users user.Repository
	jwt   jwt.Service
}

func NewService(users user.Repository, jwtSvc jwt.Service) *Service {
	return &Service{users: users, jwt: jwtSvc}
}

func (s *Service) Signup(ctx context.Context, in SignupInput) (Session, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || !isValidPassword(in.Password) {
		return Session{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInternal
	}
	if exists {
		return Session{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, ErrInternal
	}

	profile := in.Profile
	profile.Name = nil
	u := profile.Apply(user.User{Name: name, Email: email, PasswordHash: string(hash)})

	created, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return Session{}, ErrEmailAlreadyRegistered
		}
		return Session{}, ErrInternal
	}

	return s.session(created)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(u)
}

func (s *Service) session(u user.User) (Session, error) {
	tok, err := s.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return Session{}, ErrInternal
	}
	u.PasswordHash = ""
	return Session{User: u, AccessToken: tok}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= minPasswordLength
}
