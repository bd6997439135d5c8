package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/betconta/betconta/cmd/betconta/models"
)

type fakeUserRepo struct {
	users  []*models.User
	nextID int64
}

func (r *fakeUserRepo) CreateUser(_ context.Context, u *models.User) error {
	r.nextID++
	u.ID = r.nextID
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) IsEmailExist(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) IsCPFExist(_ context.Context, cpf string) (bool, error) {
	for _, u := range r.users {
		if u.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetUserByReferralCode(_ context.Context, code string) (*models.User, error) {
	for _, u := range r.users {
		if u.ReferralCode != nil && *u.ReferralCode == code {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateUserStatus(_ context.Context, id int64, status string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Status = status
		}
	}
	return nil
}

func (r *fakeUserRepo) SetReferralCode(_ context.Context, id int64, code string) error {
	for _, u := range r.users {
		if u.ID == id {
			u.ReferralCode = &code
		}
	}
	return nil
}

func registerReq() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "João Silva",
		Email:    "Joao@Example.com",
		CPF:      "123.456.789-01",
		Phone:    "11999998888",
		Password: "super-secret",
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)

	user, err := s.Register(context.Background(), registerReq())
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", user.Email)
	assert.Equal(t, "12345678901", user.CPF)
	assert.Equal(t, models.MasterStatusPending, user.Status)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("super-secret")))
}

func TestRegisterRejectsDuplicateEmailAndCPF(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)
	_, err := s.Register(context.Background(), registerReq())
	require.NoError(t, err)

	_, err = s.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, ErrEmailExists)

	req := registerReq()
	req.Email = "other@example.com"
	_, err = s.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrCPFExists)
}

func TestRegisterRejectsMalformedCPF(t *testing.T) {
	s := NewUserService(&fakeUserRepo{})
	req := registerReq()
	req.CPF = "1234"
	_, err := s.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidCPF)
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	s := NewUserService(repo)
	_, err := s.Register(context.Background(), registerReq())
	require.NoError(t, err)

	user, err := s.Login(context.Background(), models.LoginRequest{Email: "joao@example.com", Password: "super-secret"})
	require.NoError(t, err)
	assert.Equal(t, "joao@example.com", user.Email)

	_, err = s.Login(context.Background(), models.LoginRequest{Email: "joao@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidPassword)

	_, err = s.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "super-secret"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
