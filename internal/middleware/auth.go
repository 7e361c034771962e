package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/forohub/internal/api/httpx"
	"github.com/baharkarakas/forohub/internal/auth"
	"github.com/baharkarakas/forohub/internal/models"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// UserLookup re-reads the token subject so deleted accounts stop working.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type AuthMiddleware struct {
	tokens TokenParser
	users  UserLookup
}

func NewAuthMiddleware(tokens TokenParser, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

// Authenticate resolves a bearer token into an Identity. Requests without a
// bearer header, or with a token that is not a JWT at all, pass through
// anonymous; an expired or badly signed token is rejected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.tokens.Parse(token)
		if errors.Is(err, auth.ErrTokenMalformed) {
			next.ServeHTTP(w, r)
			return
		}
		if err != nil {
			msg := "invalid access token"
			if errors.Is(err, auth.ErrTokenExpired) {
				msg = "access token expired"
			}
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", msg, nil)
			return
		}

		u, err := m.users.GetByID(r.Context(), claims.UserID)
		if err != nil {
			slog.WarnContext(r.Context(), "token for unknown user", "user_id", claims.UserID, "err", err)
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid access token", nil)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{UserID: u.ID, Email: u.Email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests that Authenticate left anonymous.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="forohub"`)
			httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
