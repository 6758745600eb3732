package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/repository"
	"github.com/dentalcare/clinic-api/pkg/auth"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
	"github.com/dentalcare/clinic-api/pkg/security"
)

type Service struct {
	userRepo repository.UserRepository
	tokens   auth.TokenService
	hasher   security.PasswordHasher
}

func NewService(userRepo repository.UserRepository, tokens auth.TokenService, hasher security.PasswordHasher) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// Register creates an account and immediately issues a token, matching
// the register-then-signed-in flow of the client.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.NewValidation("invalid password", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Email:        req.Email,
		PasswordHash: hash,
	}

	// The unique constraint on email is the source of truth; the
	// repository surfaces a ConflictError on violation.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Same failure for unknown email and bad password.
		return nil, apperrors.NewAuth("invalid credentials", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.NewAuth("invalid credentials", err)
	}

	return s.issueToken(user)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

// ValidateToken resolves a bearer token to its account claims. Called by
// the auth middleware on every protected request.
func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return s.tokens.Validate(token)
}

func (s *Service) issueToken(user *model.User) (*model.TokenResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.TokenResponse{
		Token: token,
		User:  user,
	}, nil
}
