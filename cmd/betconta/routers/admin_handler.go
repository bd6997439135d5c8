package routers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/betconta/betconta/cmd/betconta/auth"
	"github.com/betconta/betconta/cmd/betconta/format"
	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/betconta/betconta/cmd/betconta/service"
)

func (h *Handler) AdminLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.AdminLoginRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		admin, err := h.AdminService.Login(r.Context(), req)
		if err != nil {
			switch err {
			case service.ErrAdminNotFound, service.ErrInvalidPassword:
				writeError(w, http.StatusUnauthorized, "invalid login/password pair")
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		token, err := auth.GenerateToken(h.secret, admin.Login, auth.AudienceAdmin, h.sessionTTL)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		h.setSessionCookie(w, adminCookieName, token)
		writeJSON(w, http.StatusOK, models.AdminSessionResponse{Authenticated: true, Login: admin.Login})
	}
}

func (h *Handler) AdminLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(adminCookieName); err == nil && c.Value != "" {
			h.revoked.Set(c.Value, struct{}{})
			h.adminCache.Invalidate(c.Value)
		}
		clearSessionCookie(w, adminCookieName)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// AdminSessionHandler is the admin session probe; like the user probe it
// answers 200 with authenticated=false instead of failing.
func (h *Handler) AdminSessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, ok := h.adminFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusOK, models.AdminSessionResponse{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, models.AdminSessionResponse{Authenticated: true, Login: admin.Login})
	}
}

func (h *Handler) AdminListMastersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.AdminService.ListMasters(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		resp := make([]models.MasterResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, models.MasterResponse{
				ID:        u.ID,
				Name:      u.Name,
				Email:     u.Email,
				CPF:       format.CPF(u.CPF),
				Phone:     format.Phone(u.Phone),
				Status:    u.Status,
				CreatedAt: format.Date(u.CreatedAt),
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *Handler) AdminReviewMasterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid master id")
			return
		}
		var req models.MasterReviewRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		if err := h.AdminService.ReviewMaster(r.Context(), masterID, req.Status); err != nil {
			switch err {
			case service.ErrMasterNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}

func (h *Handler) AdminListChildrenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		masterID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid master id")
			return
		}
		children, err := h.AccountService.ListChildrenOf(r.Context(), masterID)
		if err != nil {
			switch err {
			case service.ErrMasterNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, children)
	}
}

// AdminTransactionsHandler returns the full transaction list together with
// the deposit/withdrawal totals for the summary cards. The aggregation is
// recomputed from the fetched snapshot on every call.
func (h *Handler) AdminTransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txs, err := h.PaymentService.GetAllTransactions(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"summary":      service.Summarize(txs),
			"transactions": transactionResponses(txs, false),
		})
	}
}

func qrCodeResponses(reqs []models.QrCodeRequest, masterNames map[int64]string) []models.QrCodeRequestResponse {
	resp := make([]models.QrCodeRequestResponse, 0, len(reqs))
	for _, q := range reqs {
		qr := models.QrCodeRequestResponse{
			ID:           q.PublicID,
			MasterName:   masterNames[q.UserID],
			HouseName:    q.HouseName,
			BettingHouse: q.BettingHouse,
			ChineseHouse: q.ChineseHouse,
			Payload:      q.Payload,
			Status:       q.Status,
			CreatedAt:    format.DateTime(q.CreatedAt),
		}
		if q.AdminNotes != nil {
			qr.AdminNotes = *q.AdminNotes
		}
		resp = append(resp, qr)
	}
	return resp
}

func (h *Handler) AdminListQrCodesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := h.QrCodeService.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		masters, err := h.AdminService.ListMasters(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		names := make(map[int64]string, len(masters))
		for _, m := range masters {
			names[m.ID] = m.Name
		}
		writeJSON(w, http.StatusOK, qrCodeResponses(reqs, names))
	}
}

func (h *Handler) AdminReviewQrCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publicID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request id")
			return
		}
		var req models.QrCodeReviewRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		q, err := h.QrCodeService.Review(r.Context(), publicID, req)
		if err != nil {
			switch err {
			case service.ErrRequestNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			case service.ErrRequestFinalized:
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, qrCodeResponses([]models.QrCodeRequest{*q}, nil)[0])
	}
}

func (h *Handler) AdminListAffiliatesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqs, err := h.AffiliateService.ListAll(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, reqs)
	}
}

func (h *Handler) AdminReviewAffiliateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request id")
			return
		}
		var req models.AffiliateReviewRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		err = h.AffiliateService.Review(r.Context(), requestID, req.Status == models.AffiliateStatusApproved)
		if err != nil {
			switch err {
			case service.ErrRequestNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			case service.ErrRequestFinalized:
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": req.Status})
	}
}
