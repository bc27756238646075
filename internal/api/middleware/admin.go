package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SC-BookingService/internal/api/handlers"
)

const adminPasswordHeader = "X-Admin-Password"

const msgAdminAccessDenied = "доступ только для администратора"

// AdminAuth проверяет пароль администратора из заголовка запроса.
// В конфигурации хранится только bcrypt-хэш пароля.
func AdminAuth(passwordHash string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			password := r.Header.Get(adminPasswordHeader)
			if password == "" {
				handlers.RespondUnauthorized(w, msgAdminAccessDenied)
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
				logger.Warn("AdminAuth: admin password mismatch from %s", r.RemoteAddr)
				handlers.RespondUnauthorized(w, msgAdminAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
