package db

import (
	"context"
	"database/sql"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type UserRepoPG struct {
	db *sql.DB
}

func NewUserRepoPG(db *sql.DB) *UserRepoPG {
	return &UserRepoPG{db: db}
}

const userColumns = `id, name, email, cpf, phone, password_hash, status, referred_by, referral_code, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.Phone, &u.PasswordHash, &u.Status, &u.ReferredBy, &u.ReferralCode, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoPG) CreateUser(ctx context.Context, u *models.User) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, cpf, phone, password_hash, referred_by) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		u.Name, u.Email, u.CPF, u.Phone, u.PasswordHash, u.ReferredBy,
	).Scan(&u.ID)
}

func (r *UserRepoPG) IsEmailExist(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email=$1)`, email).Scan(&exists)
	return exists, err
}

func (r *UserRepoPG) IsCPFExist(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE cpf=$1)`, cpf).Scan(&exists)
	return exists, err
}

func (r *UserRepoPG) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *UserRepoPG) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *UserRepoPG) GetUserByReferralCode(ctx context.Context, code string) (*models.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE referral_code=$1`, code))
}

func (r *UserRepoPG) GetAllUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.Phone, &u.PasswordHash, &u.Status, &u.ReferredBy, &u.ReferralCode, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepoPG) UpdateUserStatus(ctx context.Context, id int64, status string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET status=$1 WHERE id=$2`, status, id)
	return err
}

func (r *UserRepoPG) SetReferralCode(ctx context.Context, id int64, code string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET referral_code=$1 WHERE id=$2`, code, id)
	return err
}

type AdminRepoPG struct {
	db *sql.DB
}

func NewAdminRepoPG(db *sql.DB) *AdminRepoPG {
	return &AdminRepoPG{db: db}
}

func (r *AdminRepoPG) GetAdminByLogin(ctx context.Context, login string) (*models.AdminUser, error) {
	var a models.AdminUser
	err := r.db.QueryRowContext(ctx, `SELECT id, login, password_hash, created_at FROM admin_users WHERE login=$1`, login).Scan(&a.ID, &a.Login, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepoPG) CreateAdmin(ctx context.Context, login, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO admin_users (login, password_hash) VALUES ($1, $2) ON CONFLICT (login) DO NOTHING`, login, passwordHash)
	return err
}
