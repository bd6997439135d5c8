package db

import (
	"context"
	"database/sql"

	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/google/uuid"
)

type QrCodeRepoPG struct {
	db *sql.DB
}

func NewQrCodeRepoPG(db *sql.DB) *QrCodeRepoPG {
	return &QrCodeRepoPG{db: db}
}

const qrColumns = `id, public_id, user_id, house_name, betting_house, chinese_house, payload, status, admin_notes, created_at, updated_at`

func (r *QrCodeRepoPG) CreateRequest(ctx context.Context, q *models.QrCodeRequest) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO qrcode_requests (public_id, user_id, house_name, betting_house, chinese_house, payload)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		q.PublicID, q.UserID, q.HouseName, q.BettingHouse, q.ChineseHouse, q.Payload,
	).Scan(&q.ID)
}

func (r *QrCodeRepoPG) GetRequestByPublicID(ctx context.Context, publicID uuid.UUID) (*models.QrCodeRequest, error) {
	var q models.QrCodeRequest
	err := r.db.QueryRowContext(ctx, `SELECT `+qrColumns+` FROM qrcode_requests WHERE public_id=$1`, publicID).
		Scan(&q.ID, &q.PublicID, &q.UserID, &q.HouseName, &q.BettingHouse, &q.ChineseHouse, &q.Payload, &q.Status, &q.AdminNotes, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QrCodeRepoPG) GetAllRequests(ctx context.Context) ([]models.QrCodeRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+qrColumns+` FROM qrcode_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []models.QrCodeRequest
	for rows.Next() {
		var q models.QrCodeRequest
		if err := rows.Scan(&q.ID, &q.PublicID, &q.UserID, &q.HouseName, &q.BettingHouse, &q.ChineseHouse, &q.Payload, &q.Status, &q.AdminNotes, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *QrCodeRepoPG) GetRequestsByUserID(ctx context.Context, userID int64) ([]models.QrCodeRequest, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+qrColumns+` FROM qrcode_requests WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []models.QrCodeRequest
	for rows.Next() {
		var q models.QrCodeRequest
		if err := rows.Scan(&q.ID, &q.PublicID, &q.UserID, &q.HouseName, &q.BettingHouse, &q.ChineseHouse, &q.Payload, &q.Status, &q.AdminNotes, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *QrCodeRepoPG) UpdateRequestStatus(ctx context.Context, id int64, status string, adminNotes *string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE qrcode_requests SET status=$1, admin_notes=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		status, adminNotes, id)
	return err
}
