package service

import (
	"context"
	"errors"

	"github.com/betconta/betconta/cmd/betconta/models"
	"golang.org/x/crypto/bcrypt"
)

type AdminRepo interface {
	GetAdminByLogin(ctx context.Context, login string) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, login, passwordHash string) error
}

var (
	ErrAdminNotFound  = errors.New("admin not found")
	ErrMasterNotFound = errors.New("master account not found")
)

type AdminService struct {
	AdminRepo AdminRepo
	UserRepo  UserRepo
}

func NewAdminService(adminRepo AdminRepo, userRepo UserRepo) *AdminService {
	return &AdminService{AdminRepo: adminRepo, UserRepo: userRepo}
}

func (s *AdminService) Login(ctx context.Context, req models.AdminLoginRequest) (*models.AdminUser, error) {
	admin, err := s.AdminRepo.GetAdminByLogin(ctx, req.Login)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidPassword
	}
	return admin, nil
}

func (s *AdminService) GetAdminByLogin(ctx context.Context, login string) (*models.AdminUser, error) {
	return s.AdminRepo.GetAdminByLogin(ctx, login)
}

// EnsureAdmin bootstraps the console account from config on startup. It is a
// no-op when the login already exists or no password was configured.
func (s *AdminService) EnsureAdmin(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.AdminRepo.CreateAdmin(ctx, login, string(hash))
}

func (s *AdminService) ListMasters(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetAllUsers(ctx)
}

// ReviewMaster approves or rejects a pending master account.
func (s *AdminService) ReviewMaster(ctx context.Context, userID int64, status string) error {
	if _, err := s.UserRepo.GetUserByID(ctx, userID); err != nil {
		return ErrMasterNotFound
	}
	return s.UserRepo.UpdateUserStatus(ctx, userID, status)
}
