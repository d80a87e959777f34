package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// AdminTokenHeader заголовок с токеном администратора
const AdminTokenHeader = "X-Admin-Token"

const (
	msgAdminDisabled = "администрирование отключено"
	msgInvalidToken  = "неверный токен администратора"
)

// AdminToken пропускает только запросы с верным X-Admin-Token.
// Пустой токен в конфигурации закрывает административные маршруты полностью.
func AdminToken(token string, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				log.Warn("%s %s - Admin routes disabled: no token configured", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgAdminDisabled)
				return
			}

			got := r.Header.Get(AdminTokenHeader)
			if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				log.Warn("%s %s - Invalid admin token from %s", r.Method, r.URL.Path, remoteHost(r))
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
