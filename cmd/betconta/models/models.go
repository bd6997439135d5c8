package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MasterStatusPending  = "pending"
	MasterStatusActive   = "active"
	MasterStatusRejected = "rejected"

	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"

	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"
	TxStatusFailed    = "failed"

	QrStatusPending  = "pending"
	QrStatusApproved = "approved"
	QrStatusRejected = "rejected"

	AffiliateStatusSubmitted = "submitted"
	AffiliateStatusApproved  = "approved"
	AffiliateStatusRejected  = "rejected"
)

type User struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	CPF          string     `db:"cpf"`
	Phone        string     `db:"phone"`
	PasswordHash string     `db:"password_hash"`
	Status       string     `db:"status"`
	ReferredBy   *string    `db:"referred_by"`
	ReferralCode *string    `db:"referral_code"`
	CreatedAt    time.Time  `db:"created_at"`
}

type AdminUser struct {
	ID           int64     `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type ChildAccount struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Label     string    `db:"label" json:"label"`
	HouseName string    `db:"house_name" json:"houseName"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type PixTransaction struct {
	ID             int64           `db:"id"`
	PublicID       uuid.UUID       `db:"public_id"`
	UserID         int64           `db:"user_id"`
	ChildAccountID *int64          `db:"child_account_id"`
	Type           string          `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	Fee            decimal.Decimal `db:"fee"`
	Status         string          `db:"status"`
	Counterparty   *string         `db:"counterparty"`
	PixCode        string          `db:"pix_code"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type QrCodeRequest struct {
	ID           int64     `db:"id"`
	PublicID     uuid.UUID `db:"public_id"`
	UserID       int64     `db:"user_id"`
	HouseName    string    `db:"house_name"`
	BettingHouse bool      `db:"betting_house"`
	ChineseHouse bool      `db:"chinese_house"`
	Payload      string    `db:"payload"`
	Status       string    `db:"status"`
	AdminNotes   *string   `db:"admin_notes"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type AffiliateRequest struct {
	ID             int64     `db:"id" json:"id"`
	UserID         int64     `db:"user_id" json:"userId"`
	Motivation     string    `db:"motivation" json:"motivation"`
	Experience     string    `db:"experience" json:"experience"`
	ExpectedVolume string    `db:"expected_volume" json:"expectedVolume"`
	ContactPhone   string    `db:"contact_phone" json:"contactPhone"`
	Status         string    `db:"status" json:"status"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	CPF          string `json:"cpf" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Password     string `json:"password" validate:"required,min=8"`
	ReferralCode string `json:"referralCode" validate:"omitempty,alphanum"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type DepositRequest struct {
	Amount         string `json:"amount" validate:"required"`
	ChildAccountID *int64 `json:"childAccountId"`
}

type WithdrawRequest struct {
	Amount string `json:"amount" validate:"required"`
	CPF    string `json:"cpf" validate:"required"`
}

type ChildAccountRequest struct {
	Label     string `json:"label" validate:"required"`
	HouseName string `json:"houseName" validate:"required"`
}

type AffiliateApplyRequest struct {
	Motivation     string `json:"motivation" validate:"required"`
	Experience     string `json:"experience" validate:"required"`
	ExpectedVolume string `json:"expectedVolume" validate:"required"`
	ContactPhone   string `json:"contactPhone" validate:"required"`
}

type QrCodeSubmitRequest struct {
	HouseName    string `json:"houseName" validate:"required"`
	BettingHouse bool   `json:"bettingHouse"`
	ChineseHouse bool   `json:"chineseHouse"`
	Payload      string `json:"payload" validate:"required"`
}

type QrCodeReviewRequest struct {
	Status     string `json:"status" validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"adminNotes"`
}

type MasterReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=active rejected"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	CPF           string `json:"cpf,omitempty"`
	Status        string `json:"status,omitempty"`
	Affiliate     bool   `json:"affiliate,omitempty"`
}

type AdminSessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Login         string `json:"login,omitempty"`
}

type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Amount          string    `json:"amount"`
	AmountFormatted string    `json:"amountFormatted"`
	Fee             string    `json:"fee,omitempty"`
	Status          string    `json:"status"`
	Counterparty    string    `json:"counterparty,omitempty"`
	ChildAccountID  *int64    `json:"childAccountId,omitempty"`
	PixCode         string    `json:"pixCode,omitempty"`
	CreatedAt       string    `json:"createdAt"`
}

type AffiliateReviewRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type FinancialSummary struct {
	TotalDeposits    string `json:"totalDeposits"`
	TotalWithdrawals string `json:"totalWithdrawals"`
	Net              string `json:"net"`
}

type QrCodeRequestResponse struct {
	ID           uuid.UUID `json:"id"`
	MasterName   string    `json:"masterName"`
	HouseName    string    `json:"houseName"`
	BettingHouse bool      `json:"bettingHouse"`
	ChineseHouse bool      `json:"chineseHouse"`
	Payload      string    `json:"payload"`
	Status       string    `json:"status"`
	AdminNotes   string    `json:"adminNotes,omitempty"`
	CreatedAt    string    `json:"createdAt"`
}

type MasterResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CPF       string `json:"cpf"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}
