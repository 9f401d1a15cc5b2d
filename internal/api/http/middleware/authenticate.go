package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dtroode/paperdesk/internal/api/http/response"
	"github.com/dtroode/paperdesk/internal/apierrors"
	"github.com/dtroode/paperdesk/internal/logger"
	"github.com/dtroode/paperdesk/internal/model"
)

// Cookie names carrying the session tokens.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// TokenService resolves the identity behind an access token.
type TokenService interface {
	Authenticate(ctx context.Context, accessToken string) (model.Identity, error)
}

// Authenticate validates access tokens and injects the identity into the
// request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle reads the access token from the accessToken cookie or the
// Authorization header and rejects the request when it does not resolve
// to an account.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := m.tokenService.Authenticate(r.Context(), accessToken(r))
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, err)
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin lets through only requests authenticated as the administrator.
// It must run after Handle.
func (m *Authenticate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := m.contextManager.GetIdentityFromContext(r.Context())
		if !ok {
			response.Error(w, apierrors.NewUnauthorized("Unauthorized"))
			return
		}
		if !identity.IsAdmin() {
			response.Error(w, apierrors.NewErrAdminOnly())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func accessToken(r *http.Request) string {
	if c, err := r.Cookie(AccessTokenCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
}
