package patient

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/repository"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreatePatientRequest) (*model.Patient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.NewValidation("patient name is required", nil)
	}

	patient := &model.Patient{
		Base:        model.Base{ID: uuid.New()},
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		DateOfBirth: req.DateOfBirth,
		Notes:       req.Notes,
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.NewValidation("patient name is required", nil)
		}
		patient.Name = *req.Name
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = *req.DateOfBirth
	}
	if req.Notes != nil {
		patient.Notes = *req.Notes
	}

	return s.repo.Update(ctx, patient)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*model.Patient, error) {
	return s.repo.List(ctx, userID)
}

// Search matches name/email/phone substrings; name and email matching is
// case-insensitive. An empty term degrades to a plain list.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, term string) ([]*model.Patient, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.repo.List(ctx, userID)
	}
	return s.repo.Search(ctx, userID, term)
}
