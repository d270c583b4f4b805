package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/UCR-ReservationService/internal/api/handlers"
	"github.com/m04kA/UCR-ReservationService/internal/domain"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
)

// Заголовки аутентификации. Сервис доверяет шлюзу: проверка подписи и
// сессии происходит до нас, сюда приходят уже проверенные идентификаторы
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth проверяет наличие идентификатора пользователя и кладет его вместе
// с ролью в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, "missing "+HeaderUserID+" header")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, "invalid "+HeaderUserID+" header")
			return
		}

		role := domain.UserRole(r.Header.Get(HeaderUserRole))
		if role != domain.RoleAdmin {
			role = domain.RoleInstructor
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только администраторов. Вешается поверх Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r.Context()) {
			handlers.RespondForbidden(w, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserID возвращает ID аутентифицированного пользователя из контекста
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// IsAdmin проверяет, что запрос выполняется администратором
func IsAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(userRoleKey).(domain.UserRole)
	return role == domain.RoleAdmin
}
