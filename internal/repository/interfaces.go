package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
)

// Every read and write below that touches account-owned data takes the
// owning account id and filters on it in SQL. A row that exists under a
// different account is indistinguishable from an absent row.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) (*model.Patient, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]*model.Patient, error)
	Search(ctx context.Context, userID uuid.UUID, term string) ([]*model.Patient, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error)
	Update(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error)
}

type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.ClinicSettings, error)
	Upsert(ctx context.Context, settings *model.ClinicSettings) error
}

type PatientFileRepository interface {
	Replace(ctx context.Context, file *model.PatientFile) error
	List(ctx context.Context, patientID uuid.UUID) ([]*model.PatientFile, error)
	Get(ctx context.Context, patientID, fileID uuid.UUID) (*model.PatientFile, error)
}
