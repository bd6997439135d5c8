package db

import (
	"context"
	"database/sql"

	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/shopspring/decimal"
)

type TransactionRepoPG struct {
	db *sql.DB
}

func NewTransactionRepoPG(db *sql.DB) *TransactionRepoPG {
	return &TransactionRepoPG{db: db}
}

const txColumns = `id, public_id, user_id, child_account_id, type, amount, fee, status, counterparty, pix_code, created_at, updated_at`

func scanTransactions(rows *sql.Rows) ([]models.PixTransaction, error) {
	defer rows.Close()
	var txs []models.PixTransaction
	for rows.Next() {
		var t models.PixTransaction
		if err := rows.Scan(&t.ID, &t.PublicID, &t.UserID, &t.ChildAccountID, &t.Type, &t.Amount, &t.Fee, &t.Status, &t.Counterparty, &t.PixCode, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *TransactionRepoPG) CreateTransaction(ctx context.Context, t *models.PixTransaction) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO pix_transactions (public_id, user_id, child_account_id, type, amount, fee, status, pix_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		t.PublicID, t.UserID, t.ChildAccountID, t.Type, t.Amount, t.Fee, t.Status, t.PixCode,
	).Scan(&t.ID)
}

func (r *TransactionRepoPG) GetTransactionsByUserID(ctx context.Context, userID int64) ([]models.PixTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+txColumns+` FROM pix_transactions WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *TransactionRepoPG) GetAllTransactions(ctx context.Context) ([]models.PixTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+txColumns+` FROM pix_transactions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *TransactionRepoPG) GetPendingDeposits(ctx context.Context) ([]models.PixTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+txColumns+` FROM pix_transactions WHERE type='deposit' AND status='pending' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	return scanTransactions(rows)
}

func (r *TransactionRepoPG) UpdateTransactionStatus(ctx context.Context, id int64, status string, counterparty *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE pix_transactions SET status=$1, counterparty=COALESCE($2, counterparty), updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		status, counterparty, id)
	return err
}

// GetUserBalance returns the amount available for withdrawal: completed
// deposits minus every withdrawal (amount plus fee) that has not failed.
// Pending withdrawals stay reserved so a second request cannot double-spend.
func (r *TransactionRepoPG) GetUserBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type='deposit' AND status='completed' THEN amount
		                         WHEN type='withdrawal' AND status<>'failed' THEN -(amount+fee)
		                         ELSE 0 END), 0)
		FROM pix_transactions WHERE user_id=$1`, userID).Scan(&balance)
	return balance, err
}
