package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
	"github.com/m04kA/SC-BookingService/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

const (
	msgMissingToken  = "отсутствует bearer токен"
	msgInvalidToken  = "некорректный токен"
	msgInvalidClaims = "некорректные данные токена"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет Bearer токен (HS256) и кладет identity пользователя в контекст.
// Ожидаемые claims: sub (ID пользователя), email, name, phone, email_verified.
func Auth(secret string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				logger.Warn("Auth: invalid token: %v", err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				handlers.RespondUnauthorized(w, msgInvalidClaims)
				return
			}

			identity, ok := identityFromClaims(claims)
			if !ok {
				logger.Warn("Auth: token without subject claim")
				handlers.RespondUnauthorized(w, msgInvalidClaims)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext извлекает identity пользователя из контекста запроса
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

func identityFromClaims(claims jwt.MapClaims) (domain.Identity, bool) {
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return domain.Identity{}, false
	}

	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	phone, _ := claims["phone"].(string)
	verified, _ := claims["email_verified"].(bool)

	return domain.Identity{
		UserID:        sub,
		Email:         email,
		DisplayName:   name,
		Phone:         phone,
		EmailVerified: verified,
	}, true
}
