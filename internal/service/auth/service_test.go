package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/pkg/auth"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
	"github.com/dentalcare/clinic-api/pkg/security"
)

type mockUserRepo struct {
	byID    map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		byID:    make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (m *mockUserRepo) Create(_ context.Context, u *model.User) error {
	if _, exists := m.byEmail[u.Email]; exists {
		return apperrors.NewConflict("email already registered", nil)
	}
	copied := *u
	m.byID[u.ID] = &copied
	m.byEmail[u.Email] = &copied
	return nil
}

func (m *mockUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, apperrors.NewNotFound("user", nil)
	}
	copied := *u
	return &copied, nil
}

func newTestService(repo *mockUserRepo) *Service {
	tokens := auth.NewJWTService("test-secret", time.Hour)
	return NewService(repo, tokens, security.NewBcryptHasher(bcrypt.MinCost))
}

func TestRegisterIssuesToken(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "user@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "user@example.com", resp.User.Email)
	assert.NotEqual(t, "long enough password", resp.User.PasswordHash)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(newMockUserRepo())
	req := &model.RegisterRequest{Email: "user@example.com", Password: "long enough password"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "user@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "user@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "user@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	_, badPassword := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong password!",
	})
	_, unknownEmail := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.com",
		Password: "long enough password",
	})

	require.Error(t, badPassword)
	require.Error(t, unknownEmail)
	assert.True(t, apperrors.IsAuth(badPassword))
	assert.True(t, apperrors.IsAuth(unknownEmail))
	assert.Equal(t, "invalid credentials", badPassword.(*apperrors.AppError).Message)
	assert.Equal(t, "invalid credentials", unknownEmail.(*apperrors.AppError).Message)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := newTestService(newMockUserRepo())

	resp, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "user@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}
