package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/service/auth"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ запрещен"
)

type principalKey struct{}

// Authorizer проверяет токен запроса
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*auth.Principal, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Authorization заголовок и роль. Без ролей пускает любого авторизованного
func Auth(authorizer Authorizer, logger Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authorizer.Authorize(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, msgUnauthorized)
				case errors.Is(err, domain.ErrForbidden):
					logger.Warn("%s %s - Forbidden: %v", r.Method, r.URL.Path, err)
					handlers.RespondForbidden(w, err.Error())
				default:
					logger.Error("%s %s - Failed to authorize: %v", r.Method, r.URL.Path, err)
					handlers.RespondInternalError(w)
				}
				return
			}

			if !principal.HasRole(roles...) {
				logger.Warn("%s %s - Role %s is not allowed: user_id=%s", r.Method, r.URL.Path, principal.Role, principal.UserID)
				handlers.RespondForbidden(w, msgForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// WithPrincipal кладёт пользователя в контекст
func WithPrincipal(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// GetPrincipal достаёт пользователя, положенного Auth
func GetPrincipal(ctx context.Context) (*auth.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*auth.Principal)
	return p, ok && p != nil
}
