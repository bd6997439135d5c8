package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type AccountRepo interface {
	CreateChild(ctx context.Context, c *models.ChildAccount) error
	GetChildByID(ctx context.Context, id int64) (*models.ChildAccount, error)
	GetChildrenByUserID(ctx context.Context, userID int64) ([]models.ChildAccount, error)
	DeactivateChild(ctx context.Context, id, userID int64) error
	AddCommission(ctx context.Context, affiliateUserID, childAccountID int64, amount decimal.Decimal) error
}

var ErrChildNotFound = errors.New("child account not found")

type AccountService struct {
	AccountRepo AccountRepo
	UserRepo    UserRepo
	Commission  decimal.Decimal
}

func NewAccountService(accountRepo AccountRepo, userRepo UserRepo, commission decimal.Decimal) *AccountService {
	return &AccountService{AccountRepo: accountRepo, UserRepo: userRepo, Commission: commission}
}

// CreateChild opens a child account under an active master. When the master
// registered through a referral code the affiliate earns a commission entry.
func (s *AccountService) CreateChild(ctx context.Context, user *models.User, req models.ChildAccountRequest) (*models.ChildAccount, error) {
	if user.Status != models.MasterStatusActive {
		return nil, ErrAccountNotActive
	}
	child := &models.ChildAccount{
		UserID:    user.ID,
		Label:     req.Label,
		HouseName: req.HouseName,
		Active:    true,
	}
	if err := s.AccountRepo.CreateChild(ctx, child); err != nil {
		return nil, err
	}
	s.creditReferral(ctx, user, child.ID)
	return child, nil
}

// creditReferral is best-effort: a missing or unapproved referrer never fails
// child creation.
func (s *AccountService) creditReferral(ctx context.Context, user *models.User, childID int64) {
	if user.ReferredBy == nil {
		return
	}
	affiliate, err := s.UserRepo.GetUserByReferralCode(ctx, *user.ReferredBy)
	if err != nil {
		return
	}
	_ = s.AccountRepo.AddCommission(ctx, affiliate.ID, childID, s.Commission)
}

func (s *AccountService) ListChildren(ctx context.Context, userID int64) ([]models.ChildAccount, error) {
	return s.AccountRepo.GetChildrenByUserID(ctx, userID)
}

func (s *AccountService) ListChildrenOf(ctx context.Context, masterID int64) ([]models.ChildAccount, error) {
	if _, err := s.UserRepo.GetUserByID(ctx, masterID); err != nil {
		return nil, ErrMasterNotFound
	}
	return s.AccountRepo.GetChildrenByUserID(ctx, masterID)
}

func (s *AccountService) DeactivateChild(ctx context.Context, userID, childID int64) error {
	child, err := s.AccountRepo.GetChildByID(ctx, childID)
	if err != nil || child.UserID != userID {
		return ErrChildNotFound
	}
	return s.AccountRepo.DeactivateChild(ctx, childID, userID)
}
