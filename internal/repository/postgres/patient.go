package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalcare/clinic-api/internal/model"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

const patientColumns = `id, user_id, name, email, phone, address, date_of_birth, notes, created_at, updated_at`

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, user_id, name, email, phone, address, date_of_birth, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = patient.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.UserID,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.DateOfBirth,
		patient.Notes,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1 AND user_id = $2`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// Update replaces the mutable fields of the row owned by patient.UserID.
// Last writer wins; there is no optimistic-concurrency token.
func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) (*model.Patient, error) {
	query := `
		UPDATE patients
		SET name = $1, email = $2, phone = $3, address = $4, date_of_birth = $5, notes = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
		RETURNING ` + patientColumns
	patient.UpdatedAt = time.Now()

	var updated model.Patient
	err := r.db.GetContext(ctx, &updated, query,
		patient.Name,
		patient.Email,
		patient.Phone,
		patient.Address,
		patient.DateOfBirth,
		patient.Notes,
		patient.UpdatedAt,
		patient.ID,
		patient.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &updated, nil
}

func (r *patientRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM patients WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, userID uuid.UUID) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE user_id = $1 ORDER BY name`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Search(ctx context.Context, userID uuid.UUID, term string) ([]*model.Patient, error) {
	query := `
		SELECT ` + patientColumns + `
		FROM patients
		WHERE user_id = $1
		AND (name ILIKE $2 OR email ILIKE $2 OR phone LIKE $2)
		ORDER BY name
	`
	pattern := "%" + term + "%"
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, userID, pattern); err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}
