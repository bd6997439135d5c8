package routers

import (
	"context"
	"net/http"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type contextKey string

const (
	userContextKey  contextKey = "betconta.user"
	adminContextKey contextKey = "betconta.admin"
)

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func AdminFromContext(ctx context.Context) (*models.AdminUser, bool) {
	admin, ok := ctx.Value(adminContextKey).(*models.AdminUser)
	return admin, ok
}

func (h *Handler) UserAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.userFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

func (h *Handler) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin, ok := h.adminFromRequest(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "admin authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminContextKey, admin)))
	})
}
