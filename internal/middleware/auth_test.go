package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/forohub/internal/auth"
	"github.com/baharkarakas/forohub/internal/repository/memory"
)

func setupAuth(t *testing.T) (*AuthMiddleware, *auth.TokenManager, string) {
	t.Helper()
	store := memory.New()
	u, err := store.Users().Create(context.Background(), "Ana", "ana@x.com", "hash")
	require.NoError(t, err)
	tm := auth.NewTokenManager("secret", "forohub-test", time.Hour)
	return NewAuthMiddleware(tm, store.Users()), tm, u.ID
}

// whoami echoes the identity email, or "anonymous".
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if id, ok := IdentityFrom(r.Context()); ok {
		_, _ = w.Write([]byte(id.Email))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
})

func TestAuthenticate(t *testing.T) {
	m, tm, uid := setupAuth(t)
	valid, _, err := tm.Generate(uid, "ana@x.com")
	require.NoError(t, err)
	ghost, _, err := tm.Generate("00000000-0000-0000-0000-000000000000", "ghost@x.com")
	require.NoError(t, err)
	foreign, _, err := auth.NewTokenManager("other", "forohub-test", time.Hour).Generate(uid, "ana@x.com")
	require.NoError(t, err)
	expired, _, err := auth.NewTokenManager("secret", "forohub-test", -time.Minute).Generate(uid, "ana@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"no header", "", http.StatusOK, "anonymous"},
		{"basic scheme", "Basic YTpi", http.StatusOK, "anonymous"},
		{"valid token", "Bearer " + valid, http.StatusOK, "ana@x.com"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "ana@x.com"},
		{"malformed token", "Bearer not.a.jwt", http.StatusOK, "anonymous"},
		{"single segment", "Bearer garbage", http.StatusOK, "anonymous"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"wrong signature", "Bearer " + foreign, http.StatusUnauthorized, ""},
		{"vanished user", "Bearer " + ghost, http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			m.Authenticate(whoami).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	m, tm, uid := setupAuth(t)
	h := m.Authenticate(RequireAuth(whoami))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage.token.value")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	tok, _, err := tm.Generate(uid, "ana@x.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana@x.com", rec.Body.String())
}
