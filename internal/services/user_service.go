package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/baharkarakas/forohub/internal/metrics"
	"github.com/baharkarakas/forohub/internal/models"
	repo "github.com/baharkarakas/forohub/internal/repository"
)

const minPasswordLength = 6

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) error
}

type TokenIssuer interface {
	Generate(userID, email string) (string, time.Time, error)
}

// RegisterUserInput is the payload of a user registration.
type RegisterUserInput struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"clave"`
}

func (in RegisterUserInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, notBlank, validation.RuneLength(1, 100)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.Password, validation.Required, validation.RuneLength(minPasswordLength, 0)),
	)
}

// Token is an issued bearer token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type UserService struct {
	users  repo.Users
	hasher PasswordHasher
	tokens TokenIssuer

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users repo.Users, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (models.User, error) {
	in.Email = models.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return models.User{}, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.Create(ctx, in.Name, in.Email, hash)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login exchanges credentials for a bearer token. Unknown email and wrong
// password fail the same way and cost the same hash verification.
func (s *UserService) Login(ctx context.Context, email, password string) (Token, error) {
	tok, err := s.login(ctx, models.NormalizeEmail(email), password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return Token{}, err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return tok, nil
}

func (s *UserService) login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			return Token{}, err
		}
		_ = s.hasher.Verify(password, s.dummy())
		return Token{}, ErrInvalidCredentials
	}
	if err := s.hasher.Verify(password, u.PasswordHash); err != nil {
		slog.DebugContext(ctx, "login rejected", "user_id", u.ID, "err", err)
		return Token{}, ErrInvalidCredentials
	}
	value, exp, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: value, ExpiresAt: exp}, nil
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("forohub-timing-equalizer")
	})
	return s.dummyHash
}
