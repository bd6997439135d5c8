package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type fakeTxRepo struct {
	created []models.PixTransaction
	all     []models.PixTransaction
	balance decimal.Decimal
	updated map[int64]string
}

func newFakeTxRepo(balance string) *fakeTxRepo {
	return &fakeTxRepo{balance: decimal.RequireFromString(balance), updated: map[int64]string{}}
}

func (r *fakeTxRepo) CreateTransaction(_ context.Context, t *models.PixTransaction) error {
	t.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *t)
	return nil
}

func (r *fakeTxRepo) GetTransactionsByUserID(_ context.Context, userID int64) ([]models.PixTransaction, error) {
	return r.all, nil
}

func (r *fakeTxRepo) GetAllTransactions(_ context.Context) ([]models.PixTransaction, error) {
	return r.all, nil
}

func (r *fakeTxRepo) GetPendingDeposits(_ context.Context) ([]models.PixTransaction, error) {
	return r.all, nil
}

func (r *fakeTxRepo) UpdateTransactionStatus(_ context.Context, id int64, status string, _ *string) error {
	r.updated[id] = status
	return nil
}

func (r *fakeTxRepo) GetUserBalance(_ context.Context, _ int64) (decimal.Decimal, error) {
	return r.balance, nil
}

type fakePixClient struct {
	status int
	body   string
}

func (c *fakePixClient) GetTransaction(_ context.Context, _ string) (*http.Response, error) {
	return &http.Response{
		StatusCode: c.status,
		Status:     http.StatusText(c.status),
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func activeUser() *models.User {
	return &models.User{ID: 1, CPF: "12345678901", Status: models.MasterStatusActive}
}

func newPaymentService(repo *fakeTxRepo) *PaymentService {
	return NewPaymentService(repo, nil, nil, decimal.RequireFromString("4.90"))
}

func TestDepositCreatesPendingTransaction(t *testing.T) {
	repo := newFakeTxRepo("0")
	s := newPaymentService(repo)

	tx, err := s.Deposit(context.Background(), activeUser(), models.DepositRequest{Amount: "100.00"})
	require.NoError(t, err)
	assert.Equal(t, models.TxTypeDeposit, tx.Type)
	assert.Equal(t, models.TxStatusPending, tx.Status)
	assert.Equal(t, "100.00", tx.Amount.StringFixed(2))
	assert.NotEmpty(t, tx.PixCode)
}

func TestDepositRejectsInactiveMaster(t *testing.T) {
	s := newPaymentService(newFakeTxRepo("0"))
	user := activeUser()
	user.Status = models.MasterStatusPending

	_, err := s.Deposit(context.Background(), user, models.DepositRequest{Amount: "50.00"})
	assert.ErrorIs(t, err, ErrAccountNotActive)
}

func TestDepositRejectsBadAmount(t *testing.T) {
	s := newPaymentService(newFakeTxRepo("0"))
	for _, amount := range []string{"", "abc", "-10", "0"} {
		_, err := s.Deposit(context.Background(), activeUser(), models.DepositRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
	}
}

func TestWithdrawDebitsAmountPlusFee(t *testing.T) {
	repo := newFakeTxRepo("100.00")
	s := newPaymentService(repo)

	// 95.10 + 4.90 fee == exactly the available balance
	tx, err := s.Withdraw(context.Background(), activeUser(), models.WithdrawRequest{Amount: "95.10", CPF: "123.456.789-01"})
	require.NoError(t, err)
	assert.Equal(t, "95.10", tx.Amount.StringFixed(2))
	assert.Equal(t, "4.90", tx.Fee.StringFixed(2))
	assert.Equal(t, "100.00", tx.Amount.Add(tx.Fee).StringFixed(2))
	assert.Equal(t, models.TxStatusPending, tx.Status)
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	s := newPaymentService(newFakeTxRepo("100.00"))

	_, err := s.Withdraw(context.Background(), activeUser(), models.WithdrawRequest{Amount: "95.11", CPF: "12345678901"})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestWithdrawRequiresOwnCPF(t *testing.T) {
	s := newPaymentService(newFakeTxRepo("100.00"))

	_, err := s.Withdraw(context.Background(), activeUser(), models.WithdrawRequest{Amount: "10.00", CPF: "99999999999"})
	assert.ErrorIs(t, err, ErrCPFMismatch)
}

func TestSummarize(t *testing.T) {
	txs := []models.PixTransaction{
		{Type: models.TxTypeDeposit, Amount: decimal.RequireFromString("100.00"), Status: models.TxStatusCompleted},
		{Type: models.TxTypeWithdrawal, Amount: decimal.RequireFromString("30.00"), Status: models.TxStatusCompleted},
	}
	summary := Summarize(txs)
	assert.Equal(t, "100.00", summary.TotalDeposits)
	assert.Equal(t, "30.00", summary.TotalWithdrawals)
	assert.Equal(t, "70.00", summary.Net)
}

func TestSummarizeSkipsFailed(t *testing.T) {
	txs := []models.PixTransaction{
		{Type: models.TxTypeDeposit, Amount: decimal.RequireFromString("100.00"), Status: models.TxStatusCompleted},
		{Type: models.TxTypeDeposit, Amount: decimal.RequireFromString("999.00"), Status: models.TxStatusFailed},
	}
	summary := Summarize(txs)
	assert.Equal(t, "100.00", summary.TotalDeposits)
	assert.Equal(t, "100.00", summary.Net)
}

func TestSettleDepositCompletes(t *testing.T) {
	repo := newFakeTxRepo("0")
	s := newPaymentService(repo)
	s.PixClient = &fakePixClient{status: http.StatusOK, body: `{"txid":"x","status":"completed","payer_name":"Maria"}`}

	s.settleDeposit(context.Background(), "http://provider", models.PixTransaction{ID: 42}, zap.NewNop())
	assert.Equal(t, models.TxStatusCompleted, repo.updated[42])
}

func TestSettleDepositNoContentFails(t *testing.T) {
	repo := newFakeTxRepo("0")
	s := newPaymentService(repo)
	s.PixClient = &fakePixClient{status: http.StatusNoContent}

	s.settleDeposit(context.Background(), "http://provider", models.PixTransaction{ID: 7}, zap.NewNop())
	assert.Equal(t, models.TxStatusFailed, repo.updated[7])
}

func TestSettleDepositUnknownStatusLeavesPending(t *testing.T) {
	repo := newFakeTxRepo("0")
	s := newPaymentService(repo)
	s.PixClient = &fakePixClient{status: http.StatusOK, body: `{"txid":"x","status":"processing"}`}

	s.settleDeposit(context.Background(), "http://provider", models.PixTransaction{ID: 9}, zap.NewNop())
	assert.Empty(t, repo.updated)
}
