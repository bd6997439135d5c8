package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type AffiliateRepo interface {
	CreateRequest(ctx context.Context, a *models.AffiliateRequest) error
	HasOpenRequest(ctx context.Context, userID int64) (bool, error)
	GetRequestByID(ctx context.Context, id int64) (*models.AffiliateRequest, error)
	GetAllRequests(ctx context.Context) ([]models.AffiliateRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status string) error
}

var ErrRequestAlreadyOpen = errors.New("affiliate request already submitted")

type AffiliateService struct {
	AffiliateRepo AffiliateRepo
	UserRepo      UserRepo
}

func NewAffiliateService(affiliateRepo AffiliateRepo, userRepo UserRepo) *AffiliateService {
	return &AffiliateService{AffiliateRepo: affiliateRepo, UserRepo: userRepo}
}

func (s *AffiliateService) Apply(ctx context.Context, user *models.User, req models.AffiliateApplyRequest) (*models.AffiliateRequest, error) {
	open, err := s.AffiliateRepo.HasOpenRequest(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrRequestAlreadyOpen
	}
	a := &models.AffiliateRequest{
		UserID:         user.ID,
		Motivation:     req.Motivation,
		Experience:     req.Experience,
		ExpectedVolume: req.ExpectedVolume,
		ContactPhone:   req.ContactPhone,
		Status:         models.AffiliateStatusSubmitted,
	}
	if err := s.AffiliateRepo.CreateRequest(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AffiliateService) ListAll(ctx context.Context) ([]models.AffiliateRequest, error) {
	return s.AffiliateRepo.GetAllRequests(ctx)
}

// Review approves or rejects an affiliate application. Approval assigns the
// user a referral code used to attribute child-account signups.
func (s *AffiliateService) Review(ctx context.Context, requestID int64, approve bool) error {
	req, err := s.AffiliateRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return ErrRequestNotFound
	}
	if req.Status != models.AffiliateStatusSubmitted {
		return ErrRequestFinalized
	}
	if !approve {
		return s.AffiliateRepo.UpdateRequestStatus(ctx, req.ID, models.AffiliateStatusRejected)
	}
	code, err := newReferralCode()
	if err != nil {
		return err
	}
	if err := s.UserRepo.SetReferralCode(ctx, req.UserID, code); err != nil {
		return err
	}
	return s.AffiliateRepo.UpdateRequestStatus(ctx, req.ID, models.AffiliateStatusApproved)
}

func newReferralCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
