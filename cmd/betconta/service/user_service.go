package service

import (
	"context"
	"errors"
	"strings"

	"github.com/betconta/betconta/cmd/betconta/models"
	"golang.org/x/crypto/bcrypt"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) error
	IsEmailExist(ctx context.Context, email string) (bool, error)
	IsCPFExist(ctx context.Context, cpf string) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUserStatus(ctx context.Context, id int64, status string) error
	SetReferralCode(ctx context.Context, id int64, code string) error
}

var (
	ErrEmailExists     = errors.New("email already registered")
	ErrCPFExists       = errors.New("cpf already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid email/password pair")
	ErrInvalidCPF      = errors.New("invalid cpf")
)

type UserService struct {
	UserRepo UserRepo
}

func NewUserService(repo UserRepo) *UserService {
	return &UserService{UserRepo: repo}
}

// normalizeCPF strips formatting and keeps only the 11 digits.
func normalizeCPF(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	cpf := normalizeCPF(req.CPF)
	if len(cpf) != 11 {
		return nil, ErrInvalidCPF
	}
	exists, err := s.UserRepo.IsEmailExist(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}
	exists, err = s.UserRepo.IsCPFExist(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCPFExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		CPF:          cpf,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Status:       models.MasterStatusPending,
	}
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		user.ReferredBy = &code
	}
	if err := s.UserRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidPassword
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.UserRepo.GetUserByEmail(ctx, email)
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.UserRepo.GetUserByID(ctx, id)
}
