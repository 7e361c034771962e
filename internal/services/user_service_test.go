package services

import (
	"context"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/forohub/internal/auth"
	"github.com/baharkarakas/forohub/internal/repository/memory"
)

func newUserService(t *testing.T) (*UserService, *auth.TokenManager) {
	t.Helper()
	hasher := auth.NewHasher(auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	tm := auth.NewTokenManager("test-secret", "forohub-test", time.Hour)
	return NewUserService(memory.New().Users(), hasher, tm), tm
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	svc, tm := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterUserInput{Name: "Ana", Email: " Ana@X.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "ana@x.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	tok, err := svc.Login(ctx, "ANA@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	assert.True(t, tok.ExpiresAt.After(time.Now()))

	claims, err := tm.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email())
}

func TestUserService_LoginFailuresLookAlike(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterUserInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, "ana@x.com", "nope")
	_, unknown := svc.Login(ctx, "ghost@x.com", "secret1")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestUserService_RegisterValidation(t *testing.T) {
	svc, _ := newUserService(t)

	tests := []struct {
		name  string
		in    RegisterUserInput
		field string
	}{
		{"missing name", RegisterUserInput{Email: "a@x.com", Password: "secret1"}, "nombre"},
		{"bad email", RegisterUserInput{Name: "Ana", Email: "not-an-email", Password: "secret1"}, "email"},
		{"short password", RegisterUserInput{Name: "Ana", Email: "a@x.com", Password: "12345"}, "clave"},
		{"missing password", RegisterUserInput{Name: "Ana", Email: "a@x.com"}, "clave"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestUserService_EmailTaken(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserInput{Name: "Ana", Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterUserInput{Name: "Ana 2", Email: "ANA@x.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}
