package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"DEVLINK_BACK-END/internal/apperr"
	"DEVLINK_BACK-END/internal/models"
	"DEVLINK_BACK-END/internal/utils"
)

type ctxKey string

const userKey ctxKey = "user"

// UserLookup resolves the user behind a verified token
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SessionGuard authenticates requests from the session cookie, falling back
// to an "Authorization: Bearer" header.
type SessionGuard struct {
	tokens     *TokenService
	users      UserLookup
	cookieName string
}

func NewSessionGuard(tokens *TokenService, users UserLookup, cookieName string) *SessionGuard {
	return &SessionGuard{tokens: tokens, users: users, cookieName: cookieName}
}

// Authenticate resolves the user that sent r. Missing, invalid or expired
// tokens and tokens for deleted users all wrap apperr.ErrUnauthenticated.
func (g *SessionGuard) Authenticate(r *http.Request) (*models.User, error) {
	token := g.extractToken(r)
	if token == "" {
		return nil, fmt.Errorf("%w: please login", apperr.ErrUnauthenticated)
	}

	userID, err := g.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := g.users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrUnauthenticated)
		}
		return nil, err
	}
	return user, nil
}

func (g *SessionGuard) extractToken(r *http.Request) string {
	if c, err := r.Cookie(g.cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	// Extract token from "Bearer <token>"
	authHeader := r.Header.Get("Authorization")
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) == 2 && strings.EqualFold(tokenParts[0], "Bearer") {
		return tokenParts[1]
	}
	return ""
}

// Middleware rejects unauthenticated requests and stores the resolved user
// in the request context for the next handler.
func (g *SessionGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Authenticate(r)
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user stored by the guard.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}
