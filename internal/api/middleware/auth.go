package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/avolkov/PRS-VisitService/internal/api/handlers"
	"github.com/avolkov/PRS-VisitService/pkg/phone"
)

type contextKey string

const (
	adminIDKey      contextKey = "adminID"
	visitorPhoneKey contextKey = "visitorPhone"

	// HeaderAdminID заголовок идентификации администратора
	// Аутентификацию выполняет API gateway, сервис доверяет заголовку
	HeaderAdminID = "X-Admin-ID"

	// HeaderVisitorPhone заголовок с телефоном заявителя
	HeaderVisitorPhone = "X-Visitor-Phone"
)

// AdminAuth проверяет наличие и корректность заголовка X-Admin-ID
func AdminAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		adminIDStr := r.Header.Get(HeaderAdminID)
		if adminIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderAdminID)
			return
		}

		adminID, err := strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil || adminID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderAdminID)
			return
		}

		ctx := context.WithValue(r.Context(), adminIDKey, adminID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetAdminID извлекает ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey).(int64)
	return adminID, ok
}

// VisitorPhone проверяет наличие заголовка X-Visitor-Phone
// и кладет канонизированный телефон в контекст
func VisitorPhone(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPhone := r.Header.Get(HeaderVisitorPhone)
		if rawPhone == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок "+HeaderVisitorPhone)
			return
		}

		canonical, err := phone.Canonicalize(rawPhone)
		if err != nil {
			handlers.RespondUnauthorized(w, "некорректный заголовок "+HeaderVisitorPhone)
			return
		}

		ctx := context.WithValue(r.Context(), visitorPhoneKey, canonical)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetVisitorPhone извлекает канонизированный телефон заявителя из контекста
func GetVisitorPhone(ctx context.Context) (string, bool) {
	visitorPhone, ok := ctx.Value(visitorPhoneKey).(string)
	return visitorPhone, ok
}
