package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
	"github.com/dentalcare/clinic-api/internal/repository"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.AppointmentRepository

	// now is swappable so the past-booking guard is testable.
	now func() time.Time
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create books a new appointment. This is the only path with the
// past-date guard: edits to existing appointments are exempt.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil || patientID == uuid.Nil {
		return nil, apperrors.NewValidation("patient is required", err)
	}

	scheduled, err := model.ParseWallClock(req.ScheduledAt)
	if err != nil {
		return nil, apperrors.NewValidation("invalid appointment date", err)
	}

	if scheduled.Before(s.now()) {
		return nil, apperrors.NewValidation("cannot book an appointment in the past", nil)
	}

	status := model.AppointmentStatusPending
	if req.Status != "" {
		status = model.AppointmentStatus(req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidation("invalid appointment status", nil)
		}
	}

	appointment := &model.Appointment{
		Base:        model.Base{ID: uuid.New()},
		UserID:      userID,
		PatientID:   patientID,
		ScheduledAt: scheduled,
		Type:        req.Type,
		Notes:       req.Notes,
		Status:      status,
	}

	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, userID, id)
}

// Update replaces any subset of the mutable fields. Status changes are
// unrestricted between the three defined values, and rescheduling to a
// past time is allowed here.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil {
		patientID, err := uuid.Parse(*req.PatientID)
		if err != nil || patientID == uuid.Nil {
			return nil, apperrors.NewValidation("patient is required", err)
		}
		appointment.PatientID = patientID
	}
	if req.ScheduledAt != nil {
		scheduled, err := model.ParseWallClock(*req.ScheduledAt)
		if err != nil {
			return nil, apperrors.NewValidation("invalid appointment date", err)
		}
		appointment.ScheduledAt = scheduled
	}
	if req.Type != nil {
		appointment.Type = *req.Type
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}
	if req.Status != nil {
		status := model.AppointmentStatus(*req.Status)
		if !status.Valid() {
			return nil, apperrors.NewValidation("invalid appointment status", nil)
		}
		appointment.Status = status
	}

	return s.repo.Update(ctx, appointment)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// List applies the caller's status set and optional date range. An empty
// status set returns an empty result: the client sends the checked
// status boxes as the filter, and nothing checked means show nothing.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	if filters == nil {
		filters = &model.AppointmentFilters{}
	}

	if len(filters.Statuses) == 0 {
		return []*model.Appointment{}, nil
	}
	for _, status := range filters.Statuses {
		if !status.Valid() {
			return nil, apperrors.NewValidation("invalid appointment status", nil)
		}
	}

	return s.repo.List(ctx, userID, filters)
}

// AttachFile records the stored attachment name on an appointment. The
// file itself has already been persisted by the caller; a failure here
// does not undo that write.
func (s *Service) AttachFile(ctx context.Context, userID, id uuid.UUID, storedName string) (*model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	appointment.Attachment = storedName
	return s.repo.Update(ctx, appointment)
}
