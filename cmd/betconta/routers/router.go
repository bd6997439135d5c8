package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func SetupRoutersWithLogger(h *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(LoggingMiddleware(logger))

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.RegisterHandler())
		r.Post("/login", h.LoginHandler())
		r.Post("/logout", h.LogoutHandler())
		r.Get("/session", h.SessionHandler())

		r.Group(func(r chi.Router) {
			r.Use(h.UserAuthMiddleware)
			r.Get("/transactions", h.TransactionsHandler())
			r.Post("/deposits", h.DepositHandler())
			r.Post("/withdrawals", h.WithdrawHandler())
			r.Get("/accounts", h.ListChildrenHandler())
			r.Post("/accounts", h.CreateChildHandler())
			r.Delete("/accounts/{id}", h.DeactivateChildHandler())
			r.Post("/affiliate", h.AffiliateApplyHandler())
			r.Get("/qrcode-requests", h.ListUserQrCodesHandler())
			r.Post("/qrcode-requests", h.SubmitQrCodeHandler())
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.AdminLoginHandler())
		r.Post("/logout", h.AdminLogoutHandler())
		r.Get("/session", h.AdminSessionHandler())

		r.Group(func(r chi.Router) {
			r.Use(h.AdminAuthMiddleware)
			r.Get("/masters", h.AdminListMastersHandler())
			r.Patch("/masters/{id}", h.AdminReviewMasterHandler())
			r.Get("/masters/{id}/children", h.AdminListChildrenHandler())
			r.Get("/transactions", h.AdminTransactionsHandler())
			r.Get("/qrcode-requests", h.AdminListQrCodesHandler())
			r.Patch("/qrcode-requests/{id}", h.AdminReviewQrCodeHandler())
			r.Get("/affiliate-requests", h.AdminListAffiliatesHandler())
			r.Patch("/affiliate-requests/{id}", h.AdminReviewAffiliateHandler())
		})
	})

	r.Get("/api/cep/{cep}", h.CEPHandler())

	// Everything else goes through the route gate and renders a page shell.
	r.NotFound(h.PageHandler())
	return r
}
