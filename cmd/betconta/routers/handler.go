package routers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/betconta/betconta/cmd/betconta/auth"
	"github.com/betconta/betconta/cmd/betconta/cache"
	"github.com/betconta/betconta/cmd/betconta/format"
	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/betconta/betconta/cmd/betconta/service"
)

const (
	userCookieName  = "betconta_session"
	adminCookieName = "betconta_admin"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type AdminService interface {
	Login(ctx context.Context, req models.AdminLoginRequest) (*models.AdminUser, error)
	GetAdminByLogin(ctx context.Context, login string) (*models.AdminUser, error)
	ListMasters(ctx context.Context) ([]models.User, error)
	ReviewMaster(ctx context.Context, userID int64, status string) error
}

type PaymentService interface {
	Deposit(ctx context.Context, user *models.User, req models.DepositRequest) (*models.PixTransaction, error)
	Withdraw(ctx context.Context, user *models.User, req models.WithdrawRequest) (*models.PixTransaction, error)
	GetUserTransactions(ctx context.Context, userID int64) ([]models.PixTransaction, error)
	GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetAllTransactions(ctx context.Context) ([]models.PixTransaction, error)
}

type AccountService interface {
	CreateChild(ctx context.Context, user *models.User, req models.ChildAccountRequest) (*models.ChildAccount, error)
	ListChildren(ctx context.Context, userID int64) ([]models.ChildAccount, error)
	ListChildrenOf(ctx context.Context, masterID int64) ([]models.ChildAccount, error)
	DeactivateChild(ctx context.Context, userID, childID int64) error
}

type QrCodeService interface {
	Submit(ctx context.Context, user *models.User, req models.QrCodeSubmitRequest) (*models.QrCodeRequest, error)
	ListAll(ctx context.Context) ([]models.QrCodeRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]models.QrCodeRequest, error)
	Review(ctx context.Context, publicID uuid.UUID, req models.QrCodeReviewRequest) (*models.QrCodeRequest, error)
}

type AffiliateService interface {
	Apply(ctx context.Context, user *models.User, req models.AffiliateApplyRequest) (*models.AffiliateRequest, error)
	ListAll(ctx context.Context) ([]models.AffiliateRequest, error)
	Review(ctx context.Context, requestID int64, approve bool) error
}

type CEPLookup interface {
	Lookup(ctx context.Context, cep string) (models.Address, error)
}

type Handler struct {
	UserService      UserService
	AdminService     AdminService
	PaymentService   PaymentService
	AccountService   AccountService
	QrCodeService    QrCodeService
	AffiliateService AffiliateService
	CEP              CEPLookup
	Logger           *zap.Logger

	secret     []byte
	sessionTTL time.Duration

	// sessionCache and adminCache are the server-side siblings of the 30s
	// freshness window the dashboards rely on; revoked holds tokens signed
	// out before their JWT expiry.
	sessionCache *cache.Cache[int64]
	adminCache   *cache.Cache[string]
	revoked      *cache.Cache[struct{}]

	validate *validator.Validate
}

type HandlerConfig struct {
	Secret          []byte
	SessionTTL      time.Duration
	SessionCacheTTL time.Duration
}

func NewHandler(
	userService UserService,
	adminService AdminService,
	paymentService PaymentService,
	accountService AccountService,
	qrCodeService QrCodeService,
	affiliateService AffiliateService,
	cep CEPLookup,
	cfg HandlerConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		UserService:      userService,
		AdminService:     adminService,
		PaymentService:   paymentService,
		AccountService:   accountService,
		QrCodeService:    qrCodeService,
		AffiliateService: affiliateService,
		CEP:              cep,
		Logger:           logger,
		secret:           cfg.Secret,
		sessionTTL:       cfg.SessionTTL,
		sessionCache:     cache.New[int64](cfg.SessionCacheTTL),
		adminCache:       cache.New[string](cfg.SessionCacheTTL),
		revoked:          cache.New[struct{}](cfg.SessionTTL),
		validate:         validator.New(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

var errBadJSON = errors.New("invalid request body")

// decodeValid decodes the JSON body and runs the validation tags before
// anything reaches the service layer.
func (h *Handler) decodeValid(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errBadJSON
	}
	return h.validate.Struct(dst)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid field: " + verrs[0].Field()
	}
	return "invalid request body"
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, name, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HttpOnly: true,
	})
}

func clearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// userFromRequest resolves the user session cookie: revocation first, then
// the freshness cache, then the token itself. Every failure mode means
// "not authenticated" and nothing else.
func (h *Handler) userFromRequest(r *http.Request) (*models.User, bool) {
	c, err := r.Cookie(userCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	if _, gone := h.revoked.Get(c.Value); gone {
		return nil, false
	}
	if id, ok := h.sessionCache.Get(c.Value); ok {
		user, err := h.UserService.GetUserByID(r.Context(), id)
		if err != nil {
			return nil, false
		}
		return user, true
	}
	sub, err := auth.ParseToken(h.secret, c.Value, auth.AudienceUser)
	if err != nil {
		return nil, false
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, false
	}
	user, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		return nil, false
	}
	h.sessionCache.Set(c.Value, id)
	return user, true
}

func (h *Handler) adminFromRequest(r *http.Request) (*models.AdminUser, bool) {
	c, err := r.Cookie(adminCookieName)
	if err != nil || c.Value == "" {
		return nil, false
	}
	if _, gone := h.revoked.Get(c.Value); gone {
		return nil, false
	}
	if login, ok := h.adminCache.Get(c.Value); ok {
		admin, err := h.AdminService.GetAdminByLogin(r.Context(), login)
		if err != nil {
			return nil, false
		}
		return admin, true
	}
	login, err := auth.ParseToken(h.secret, c.Value, auth.AudienceAdmin)
	if err != nil {
		return nil, false
	}
	admin, err := h.AdminService.GetAdminByLogin(r.Context(), login)
	if err != nil {
		return nil, false
	}
	h.adminCache.Set(c.Value, login)
	return admin, true
}

func (h *Handler) issueUserSession(w http.ResponseWriter, user *models.User) error {
	token, err := auth.GenerateToken(h.secret, strconv.FormatInt(user.ID, 10), auth.AudienceUser, h.sessionTTL)
	if err != nil {
		return err
	}
	h.setSessionCookie(w, userCookieName, token)
	return nil
}

func userSessionResponse(user *models.User) models.SessionResponse {
	return models.SessionResponse{
		Authenticated: true,
		Name:          user.Name,
		Email:         format.MaskEmail(user.Email),
		CPF:           format.MaskCPF(user.CPF),
		Status:        user.Status,
		Affiliate:     user.ReferralCode != nil,
	}
}

func (h *Handler) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		user, err := h.UserService.Register(r.Context(), req)
		if err != nil {
			switch err {
			case service.ErrEmailExists, service.ErrCPFExists:
				writeError(w, http.StatusConflict, err.Error())
			case service.ErrInvalidCPF:
				writeError(w, http.StatusBadRequest, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		if err := h.issueUserSession(w, user); err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusCreated, userSessionResponse(user))
	}
}

func (h *Handler) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		user, err := h.UserService.Login(r.Context(), req)
		if err != nil {
			switch err {
			case service.ErrUserNotFound, service.ErrInvalidPassword:
				writeError(w, http.StatusUnauthorized, "invalid email/password pair")
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		if err := h.issueUserSession(w, user); err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, userSessionResponse(user))
	}
}

// LogoutHandler always succeeds from the client's point of view: the token is
// revoked, its cache entry dropped and the cookie cleared whether or not the
// session was still valid.
func (h *Handler) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(userCookieName); err == nil && c.Value != "" {
			h.revoked.Set(c.Value, struct{}{})
			h.sessionCache.Invalidate(c.Value)
		}
		clearSessionCookie(w, userCookieName)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// SessionHandler is the user session probe. It never returns an error status:
// any failure collapses into authenticated=false.
func (h *Handler) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := h.userFromRequest(r)
		if !ok {
			writeJSON(w, http.StatusOK, models.SessionResponse{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, userSessionResponse(user))
	}
}

func transactionResponses(txs []models.PixTransaction, includePixCode bool) []models.TransactionResponse {
	resp := make([]models.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		tr := models.TransactionResponse{
			ID:              t.PublicID,
			Type:            t.Type,
			Amount:          t.Amount.StringFixed(2),
			AmountFormatted: format.Currency(t.Amount),
			Status:          t.Status,
			ChildAccountID:  t.ChildAccountID,
			CreatedAt:       format.DateTime(t.CreatedAt),
		}
		if !t.Fee.IsZero() {
			tr.Fee = t.Fee.StringFixed(2)
		}
		if t.Counterparty != nil {
			tr.Counterparty = *t.Counterparty
		}
		if includePixCode && t.Type == models.TxTypeDeposit && t.Status == models.TxStatusPending {
			tr.PixCode = t.PixCode
		}
		resp = append(resp, tr)
	}
	return resp
}

func (h *Handler) TransactionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		txs, err := h.PaymentService.GetUserTransactions(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		balance, err := h.PaymentService.GetUserBalance(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"balance":          balance.StringFixed(2),
			"balanceFormatted": format.Currency(balance),
			"transactions":     transactionResponses(txs, true),
		})
	}
}

func (h *Handler) DepositHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req models.DepositRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		tx, err := h.PaymentService.Deposit(r.Context(), user, req)
		if err != nil {
			switch err {
			case service.ErrInvalidAmount:
				writeError(w, http.StatusBadRequest, err.Error())
			case service.ErrAccountNotActive:
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":      tx.PublicID,
			"amount":  tx.Amount.StringFixed(2),
			"status":  tx.Status,
			"pixCode": tx.PixCode,
		})
	}
}

func (h *Handler) WithdrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req models.WithdrawRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		tx, err := h.PaymentService.Withdraw(r.Context(), user, req)
		if err != nil {
			switch err {
			case service.ErrInvalidAmount:
				writeError(w, http.StatusBadRequest, err.Error())
			case service.ErrCPFMismatch:
				writeError(w, http.StatusUnprocessableEntity, err.Error())
			case service.ErrInsufficientFunds:
				writeError(w, http.StatusPaymentRequired, err.Error())
			case service.ErrAccountNotActive:
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"id":           tx.PublicID,
			"amount":       tx.Amount.StringFixed(2),
			"fee":          tx.Fee.StringFixed(2),
			"totalDebited": tx.Amount.Add(tx.Fee).StringFixed(2),
			"status":       tx.Status,
		})
	}
}

func (h *Handler) CreateChildHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req models.ChildAccountRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		child, err := h.AccountService.CreateChild(r.Context(), user, req)
		if err != nil {
			switch err {
			case service.ErrAccountNotActive:
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, child)
	}
}

func (h *Handler) ListChildrenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		children, err := h.AccountService.ListChildren(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, children)
	}
}

func (h *Handler) DeactivateChildHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		childID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid child account id")
			return
		}
		if err := h.AccountService.DeactivateChild(r.Context(), user.ID, childID); err != nil {
			switch err {
			case service.ErrChildNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

func (h *Handler) AffiliateApplyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req models.AffiliateApplyRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		if _, err := h.AffiliateService.Apply(r.Context(), user, req); err != nil {
			switch err {
			case service.ErrRequestAlreadyOpen:
				writeError(w, http.StatusConflict, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": models.AffiliateStatusSubmitted})
	}
}

func (h *Handler) SubmitQrCodeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req models.QrCodeSubmitRequest
		if err := h.decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, validationMessage(err))
			return
		}
		q, err := h.QrCodeService.Submit(r.Context(), user, req)
		if err != nil {
			switch err {
			case service.ErrAccountNotActive:
				writeError(w, http.StatusForbidden, err.Error())
			default:
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"id": q.PublicID, "status": q.Status})
	}
}

func (h *Handler) ListUserQrCodesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		reqs, err := h.QrCodeService.ListByUser(r.Context(), user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, qrCodeResponses(reqs, nil))
	}
}

func (h *Handler) CEPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addr, err := h.CEP.Lookup(r.Context(), chi.URLParam(r, "cep"))
		if err == nil {
			addr.CEP = format.CEP(addr.CEP)
		}
		if err != nil {
			switch err {
			case service.ErrInvalidCEP:
				writeError(w, http.StatusBadRequest, err.Error())
			case service.ErrCEPNotFound:
				writeError(w, http.StatusNotFound, err.Error())
			default:
				writeError(w, http.StatusBadGateway, "cep lookup failed")
			}
			return
		}
		writeJSON(w, http.StatusOK, addr)
	}
}
