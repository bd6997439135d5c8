package db

import (
	"context"
	"database/sql"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type AffiliateRepoPG struct {
	db *sql.DB
}

func NewAffiliateRepoPG(db *sql.DB) *AffiliateRepoPG {
	return &AffiliateRepoPG{db: db}
}

func (r *AffiliateRepoPG) CreateRequest(ctx context.Context, a *models.AffiliateRequest) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO affiliate_requests (user_id, motivation, experience, expected_volume, contact_phone)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.UserID, a.Motivation, a.Experience, a.ExpectedVolume, a.ContactPhone,
	).Scan(&a.ID)
}

func (r *AffiliateRepoPG) HasOpenRequest(ctx context.Context, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM affiliate_requests WHERE user_id=$1 AND status='submitted')`, userID).Scan(&exists)
	return exists, err
}

func (r *AffiliateRepoPG) GetRequestByID(ctx context.Context, id int64) (*models.AffiliateRequest, error) {
	var a models.AffiliateRequest
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, motivation, experience, expected_volume, contact_phone, status, created_at
		 FROM affiliate_requests WHERE id=$1`, id,
	).Scan(&a.ID, &a.UserID, &a.Motivation, &a.Experience, &a.ExpectedVolume, &a.ContactPhone, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AffiliateRepoPG) GetAllRequests(ctx context.Context) ([]models.AffiliateRequest, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, motivation, experience, expected_volume, contact_phone, status, created_at
		 FROM affiliate_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []models.AffiliateRequest
	for rows.Next() {
		var a models.AffiliateRequest
		if err := rows.Scan(&a.ID, &a.UserID, &a.Motivation, &a.Experience, &a.ExpectedVolume, &a.ContactPhone, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *AffiliateRepoPG) UpdateRequestStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE affiliate_requests SET status=$1 WHERE id=$2`, status, id)
	return err
}
