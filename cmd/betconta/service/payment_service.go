package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type TransactionRepo interface {
	CreateTransaction(ctx context.Context, t *models.PixTransaction) error
	GetTransactionsByUserID(ctx context.Context, userID int64) ([]models.PixTransaction, error)
	GetAllTransactions(ctx context.Context) ([]models.PixTransaction, error)
	GetPendingDeposits(ctx context.Context) ([]models.PixTransaction, error)
	UpdateTransactionStatus(ctx context.Context, id int64, status string, counterparty *string) error
	GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type PixClient interface {
	GetTransaction(ctx context.Context, url string) (*http.Response, error)
}

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCPFMismatch       = errors.New("withdrawal cpf must match the account holder")
	ErrAccountNotActive  = errors.New("master account is not active")
)

type PaymentService struct {
	TransactionRepo TransactionRepo
	UserRepo        UserRepo
	PixClient       PixClient
	WithdrawalFee   decimal.Decimal
}

func NewPaymentService(txRepo TransactionRepo, userRepo UserRepo, pixClient PixClient, withdrawalFee decimal.Decimal) *PaymentService {
	return &PaymentService{
		TransactionRepo: txRepo,
		UserRepo:        userRepo,
		PixClient:       pixClient,
		WithdrawalFee:   withdrawalFee,
	}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func (s *PaymentService) Deposit(ctx context.Context, user *models.User, req models.DepositRequest) (*models.PixTransaction, error) {
	if user.Status != models.MasterStatusActive {
		return nil, ErrAccountNotActive
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	tx := &models.PixTransaction{
		PublicID:       uuid.New(),
		UserID:         user.ID,
		ChildAccountID: req.ChildAccountID,
		Type:           models.TxTypeDeposit,
		Amount:         amount,
		Fee:            decimal.Zero,
		Status:         models.TxStatusPending,
	}
	tx.PixCode = buildPixCode(tx.PublicID, amount)
	if err := s.TransactionRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// buildPixCode produces the copy-paste payload handed to the payer. The
// provider resolves it by the transaction public id.
func buildPixCode(id uuid.UUID, amount decimal.Decimal) string {
	return fmt.Sprintf("00020126BR.GOV.BCB.PIX|%s|%s", id, amount.StringFixed(2))
}

// Withdraw debits amount plus the fixed fee. The destination key must be the
// holder's own registered CPF.
func (s *PaymentService) Withdraw(ctx context.Context, user *models.User, req models.WithdrawRequest) (*models.PixTransaction, error) {
	if user.Status != models.MasterStatusActive {
		return nil, ErrAccountNotActive
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if normalizeCPF(req.CPF) != user.CPF {
		return nil, ErrCPFMismatch
	}
	balance, err := s.TransactionRepo.GetUserBalance(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if amount.Add(s.WithdrawalFee).GreaterThan(balance) {
		return nil, ErrInsufficientFunds
	}
	tx := &models.PixTransaction{
		PublicID: uuid.New(),
		UserID:   user.ID,
		Type:     models.TxTypeWithdrawal,
		Amount:   amount,
		Fee:      s.WithdrawalFee,
		Status:   models.TxStatusPending,
	}
	if err := s.TransactionRepo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *PaymentService) GetUserTransactions(ctx context.Context, userID int64) ([]models.PixTransaction, error) {
	return s.TransactionRepo.GetTransactionsByUserID(ctx, userID)
}

func (s *PaymentService) GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.TransactionRepo.GetUserBalance(ctx, userID)
}

func (s *PaymentService) GetAllTransactions(ctx context.Context) ([]models.PixTransaction, error) {
	return s.TransactionRepo.GetAllTransactions(ctx)
}

// Summarize partitions transactions into deposits and withdrawals and totals
// each side; net is deposits minus withdrawals. Failed entries are skipped.
func Summarize(txs []models.PixTransaction) models.FinancialSummary {
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, t := range txs {
		if t.Status == models.TxStatusFailed {
			continue
		}
		switch t.Type {
		case models.TxTypeDeposit:
			deposits = deposits.Add(t.Amount)
		case models.TxTypeWithdrawal:
			withdrawals = withdrawals.Add(t.Amount)
		}
	}
	return models.FinancialSummary{
		TotalDeposits:    deposits.StringFixed(2),
		TotalWithdrawals: withdrawals.StringFixed(2),
		Net:              deposits.Sub(withdrawals).StringFixed(2),
	}
}

// StartSettlementWorker polls the PIX provider for every pending deposit and
// applies the resulting status. Provider errors are logged and the deposit is
// retried on the next tick.
func (s *PaymentService) StartSettlementWorker(ctx context.Context, providerAddr string, interval time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pending, err := s.TransactionRepo.GetPendingDeposits(ctx)
				if err != nil {
					logger.Error("failed to load pending deposits", zap.Error(err))
					continue
				}
				for _, tx := range pending {
					s.settleDeposit(ctx, providerAddr, tx, logger)
				}
			}
		}
	}()
}

func (s *PaymentService) settleDeposit(ctx context.Context, providerAddr string, tx models.PixTransaction, logger *zap.Logger) {
	url := fmt.Sprintf("%s/api/pix/%s", providerAddr, tx.PublicID)
	reqCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	resp, err := s.PixClient.GetTransaction(reqCtx, url)
	if err != nil {
		logger.Error("pix provider request failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNoContent {
		_ = s.TransactionRepo.UpdateTransactionStatus(ctx, tx.ID, models.TxStatusFailed, nil)
		return
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("unexpected pix provider status", zap.String("status", resp.Status))
		return
	}
	var providerResp struct {
		TxID      string `json:"txid"`
		Status    string `json:"status"`
		PayerName string `json:"payer_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&providerResp); err != nil {
		logger.Error("failed to decode pix provider response", zap.Error(err))
		return
	}
	var counterparty *string
	if providerResp.PayerName != "" {
		counterparty = &providerResp.PayerName
	}
	switch providerResp.Status {
	case "completed":
		_ = s.TransactionRepo.UpdateTransactionStatus(ctx, tx.ID, models.TxStatusCompleted, counterparty)
	case "failed":
		_ = s.TransactionRepo.UpdateTransactionStatus(ctx, tx.ID, models.TxStatusFailed, counterparty)
	}
}
