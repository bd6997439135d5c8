package db

import (
	"context"
	"database/sql"

	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/shopspring/decimal"
)

type AccountRepoPG struct {
	db *sql.DB
}

func NewAccountRepoPG(db *sql.DB) *AccountRepoPG {
	return &AccountRepoPG{db: db}
}

func (r *AccountRepoPG) CreateChild(ctx context.Context, c *models.ChildAccount) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO child_accounts (user_id, label, house_name) VALUES ($1, $2, $3) RETURNING id`,
		c.UserID, c.Label, c.HouseName,
	).Scan(&c.ID)
}

func (r *AccountRepoPG) GetChildByID(ctx context.Context, id int64) (*models.ChildAccount, error) {
	var c models.ChildAccount
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, label, house_name, active, created_at FROM child_accounts WHERE id=$1`, id,
	).Scan(&c.ID, &c.UserID, &c.Label, &c.HouseName, &c.Active, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *AccountRepoPG) GetChildrenByUserID(ctx context.Context, userID int64) ([]models.ChildAccount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, label, house_name, active, created_at FROM child_accounts WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var children []models.ChildAccount
	for rows.Next() {
		var c models.ChildAccount
		if err := rows.Scan(&c.ID, &c.UserID, &c.Label, &c.HouseName, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return children, nil
}

func (r *AccountRepoPG) DeactivateChild(ctx context.Context, id, userID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE child_accounts SET active=FALSE WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}

func (r *AccountRepoPG) AddCommission(ctx context.Context, affiliateUserID, childAccountID int64, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO affiliate_commissions (affiliate_user_id, child_account_id, amount) VALUES ($1, $2, $3)`,
		affiliateUserID, childAccountID, amount)
	return err
}
