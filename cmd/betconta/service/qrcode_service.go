package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type QrCodeRepo interface {
	CreateRequest(ctx context.Context, q *models.QrCodeRequest) error
	GetRequestByPublicID(ctx context.Context, publicID uuid.UUID) (*models.QrCodeRequest, error)
	GetAllRequests(ctx context.Context) ([]models.QrCodeRequest, error)
	GetRequestsByUserID(ctx context.Context, userID int64) ([]models.QrCodeRequest, error)
	UpdateRequestStatus(ctx context.Context, id int64, status string, adminNotes *string) error
}

var (
	ErrRequestNotFound  = errors.New("qr-code request not found")
	ErrRequestFinalized = errors.New("qr-code request already reviewed")
)

type QrCodeService struct {
	QrCodeRepo QrCodeRepo
}

func NewQrCodeService(repo QrCodeRepo) *QrCodeService {
	return &QrCodeService{QrCodeRepo: repo}
}

func (s *QrCodeService) Submit(ctx context.Context, user *models.User, req models.QrCodeSubmitRequest) (*models.QrCodeRequest, error) {
	if user.Status != models.MasterStatusActive {
		return nil, ErrAccountNotActive
	}
	q := &models.QrCodeRequest{
		PublicID:     uuid.New(),
		UserID:       user.ID,
		HouseName:    strings.TrimSpace(req.HouseName),
		BettingHouse: req.BettingHouse,
		ChineseHouse: req.ChineseHouse,
		Payload:      req.Payload,
		Status:       models.QrStatusPending,
	}
	if err := s.QrCodeRepo.CreateRequest(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QrCodeService) ListAll(ctx context.Context) ([]models.QrCodeRequest, error) {
	return s.QrCodeRepo.GetAllRequests(ctx)
}

func (s *QrCodeService) ListByUser(ctx context.Context, userID int64) ([]models.QrCodeRequest, error) {
	return s.QrCodeRepo.GetRequestsByUserID(ctx, userID)
}

// Review transitions a pending request to approved or rejected. Both target
// states are terminal: once reviewed, a request never changes status again.
// Two admins reviewing the same pending request race last-write-wins.
func (s *QrCodeService) Review(ctx context.Context, publicID uuid.UUID, req models.QrCodeReviewRequest) (*models.QrCodeRequest, error) {
	q, err := s.QrCodeRepo.GetRequestByPublicID(ctx, publicID)
	if err != nil {
		return nil, ErrRequestNotFound
	}
	if q.Status != models.QrStatusPending {
		return nil, ErrRequestFinalized
	}
	var notes *string
	if strings.TrimSpace(req.AdminNotes) != "" {
		n := req.AdminNotes
		notes = &n
	}
	if err := s.QrCodeRepo.UpdateRequestStatus(ctx, q.ID, req.Status, notes); err != nil {
		return nil, err
	}
	q.Status = req.Status
	q.AdminNotes = notes
	return q, nil
}
