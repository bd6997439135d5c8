package routers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/betconta/betconta/cmd/betconta/service"
)

type fakeUserService struct {
	user *models.User
}

func (s *fakeUserService) Register(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
	return s.user, nil
}

func (s *fakeUserService) Login(_ context.Context, req models.LoginRequest) (*models.User, error) {
	if req.Email != s.user.Email || req.Password != "correct-password" {
		return nil, service.ErrInvalidPassword
	}
	return s.user, nil
}

func (s *fakeUserService) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if id != s.user.ID {
		return nil, service.ErrUserNotFound
	}
	return s.user, nil
}

type fakeAdminService struct {
	admin *models.AdminUser
}

func (s *fakeAdminService) Login(_ context.Context, req models.AdminLoginRequest) (*models.AdminUser, error) {
	if req.Login != s.admin.Login || req.Password != "admin-password" {
		return nil, service.ErrAdminNotFound
	}
	return s.admin, nil
}

func (s *fakeAdminService) GetAdminByLogin(_ context.Context, login string) (*models.AdminUser, error) {
	if login != s.admin.Login {
		return nil, service.ErrAdminNotFound
	}
	return s.admin, nil
}

func (s *fakeAdminService) ListMasters(_ context.Context) ([]models.User, error) {
	return nil, nil
}

func (s *fakeAdminService) ReviewMaster(_ context.Context, _ int64, _ string) error {
	return nil
}

type fakePaymentService struct{}

func (s *fakePaymentService) Deposit(_ context.Context, _ *models.User, _ models.DepositRequest) (*models.PixTransaction, error) {
	return nil, service.ErrAccountNotActive
}

func (s *fakePaymentService) Withdraw(_ context.Context, _ *models.User, _ models.WithdrawRequest) (*models.PixTransaction, error) {
	return nil, service.ErrInsufficientFunds
}

func (s *fakePaymentService) GetUserTransactions(_ context.Context, _ int64) ([]models.PixTransaction, error) {
	return nil, nil
}

func (s *fakePaymentService) GetUserBalance(_ context.Context, _ int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (s *fakePaymentService) GetAllTransactions(_ context.Context) ([]models.PixTransaction, error) {
	return []models.PixTransaction{
		{PublicID: uuid.New(), Type: models.TxTypeDeposit, Amount: decimal.RequireFromString("100.00"), Status: models.TxStatusCompleted},
		{PublicID: uuid.New(), Type: models.TxTypeWithdrawal, Amount: decimal.RequireFromString("30.00"), Status: models.TxStatusCompleted},
	}, nil
}

type fakeQrCodeService struct {
	finalized uuid.UUID
}

func (s *fakeQrCodeService) Submit(_ context.Context, _ *models.User, _ models.QrCodeSubmitRequest) (*models.QrCodeRequest, error) {
	return nil, service.ErrAccountNotActive
}

func (s *fakeQrCodeService) ListAll(_ context.Context) ([]models.QrCodeRequest, error) {
	return nil, nil
}

func (s *fakeQrCodeService) ListByUser(_ context.Context, _ int64) ([]models.QrCodeRequest, error) {
	return nil, nil
}

func (s *fakeQrCodeService) Review(_ context.Context, publicID uuid.UUID, req models.QrCodeReviewRequest) (*models.QrCodeRequest, error) {
	if publicID == s.finalized {
		return nil, service.ErrRequestFinalized
	}
	return &models.QrCodeRequest{PublicID: publicID, Status: req.Status}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *fakeQrCodeService) {
	t.Helper()
	user := &models.User{
		ID:     1,
		Name:   "João",
		Email:  "joao@example.com",
		CPF:    "12345678901",
		Status: models.MasterStatusActive,
	}
	admin := &models.AdminUser{ID: 1, Login: "admin"}
	qr := &fakeQrCodeService{finalized: uuid.New()}
	h := NewHandler(
		&fakeUserService{user: user},
		&fakeAdminService{admin: admin},
		&fakePaymentService{},
		nil,
		qr,
		nil,
		nil,
		HandlerConfig{
			Secret:          []byte("test-secret"),
			SessionTTL:      time.Hour,
			SessionCacheTTL: 30 * time.Second,
		},
		zap.NewNop(),
	)
	return SetupRoutersWithLogger(h, zap.NewNop()), qr
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginUser(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/user/login", `{"email":"joao@example.com","password":"correct-password"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "betconta_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func loginAdmin(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/admin/login", `{"login":"admin","password":"admin-password"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "betconta_admin" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no admin cookie issued")
	return nil
}

func TestSessionProbeWithoutCookie(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/user/session", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
}

func TestSessionProbeAfterLoginMasksIdentity(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginUser(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/user/session", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "123.***.***-01", resp.CPF)
	assert.Equal(t, "j***@example.com", resp.Email)
}

func TestSessionProbeWithGarbageTokenFailsClosed(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := &http.Cookie{Name: "betconta_session", Value: "not-a-jwt"}
	rec := doJSON(t, router, http.MethodGet, "/api/user/session", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
}

func TestLogoutRevokesSession(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/user/logout", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)

	// the old token must be refused even though its JWT has not expired
	rec = doJSON(t, router, http.MethodGet, "/api/user/session", "", []*http.Cookie{cookie})
	var resp models.SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
}

func TestLogoutWithoutSessionStillSucceeds(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/user/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserCookieDoesNotOpenAdminRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginUser(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/transactions", "", []*http.Cookie{cookie})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// and the admin probe stays unauthenticated
	rec = doJSON(t, router, http.MethodGet, "/api/admin/session", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AdminSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Authenticated)
}

func TestAdminCookieDoesNotOpenUserRoutes(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginAdmin(t, router)
	// the admin cookie has a different name; present it under the user name too
	forged := &http.Cookie{Name: "betconta_session", Value: cookie.Value}

	rec := doJSON(t, router, http.MethodGet, "/api/user/transactions", "", []*http.Cookie{forged})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminFinancialSummary(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginAdmin(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/admin/transactions", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Summary      models.FinancialSummary      `json:"summary"`
		Transactions []models.TransactionResponse `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "100.00", resp.Summary.TotalDeposits)
	assert.Equal(t, "30.00", resp.Summary.TotalWithdrawals)
	assert.Equal(t, "70.00", resp.Summary.Net)
	assert.Len(t, resp.Transactions, 2)
}

func TestAdminQrCodeReview(t *testing.T) {
	router, qr := newTestRouter(t)
	cookie := loginAdmin(t, router)

	rec := doJSON(t, router, http.MethodPatch, "/api/admin/qrcode-requests/"+uuid.NewString(),
		`{"status":"approved","adminNotes":"ok"}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusOK, rec.Code)

	// a reviewed request is terminal
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/qrcode-requests/"+qr.finalized.String(),
		`{"status":"rejected"}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// the status field is schema-checked before the service runs
	rec = doJSON(t, router, http.MethodPatch, "/api/admin/qrcode-requests/"+uuid.NewString(),
		`{"status":"maybe"}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWithdrawInsufficientFundsMapsToPaymentRequired(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := loginUser(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/user/withdrawals",
		`{"amount":"50.00","cpf":"12345678901"}`, []*http.Cookie{cookie})
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestPageGateRendersViews(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="landing"`)

	cookie := loginUser(t, router)
	rec = doJSON(t, router, http.MethodGet, "/", "", []*http.Cookie{cookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="dashboard"`)

	rec = doJSON(t, router, http.MethodGet, "/admin/financial", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="admin-login"`)

	adminCookie := loginAdmin(t, router)
	rec = doJSON(t, router, http.MethodGet, "/admin/financial", "", []*http.Cookie{adminCookie})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-view="admin-financial"`)

	rec = doJSON(t, router, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
