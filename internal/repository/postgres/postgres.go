package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/dentalcare/clinic-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

type patientRepository struct {
	db *sqlx.DB
}

type appointmentRepository struct {
	db *sqlx.DB
}

type settingsRepository struct {
	db *sqlx.DB
}

type patientFileRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func NewSettingsRepository(db *sqlx.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func NewPatientFileRepository(db *sqlx.DB) repository.PatientFileRepository {
	return &patientFileRepository{db: db}
}
