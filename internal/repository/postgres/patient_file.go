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

// Replace keeps at most one stored document per patient: any previous
// row is removed before the new one is written. The two statements are
// deliberately independent; callers already treat attachment as a
// separately-failable step.
func (r *patientFileRepository) Replace(ctx context.Context, file *model.PatientFile) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM patient_files WHERE patient_id = $1`, file.PatientID); err != nil {
		return fmt.Errorf("failed to remove previous file: %w", err)
	}

	query := `
		INSERT INTO patient_files (id, patient_id, name, content_type, size, data, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	file.ID = uuid.New()
	file.UploadedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.PatientID,
		file.Name,
		file.ContentType,
		file.Size,
		file.Data,
		file.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

func (r *patientFileRepository) List(ctx context.Context, patientID uuid.UUID) ([]*model.PatientFile, error) {
	query := `
		SELECT id, patient_id, name, content_type, size, uploaded_at
		FROM patient_files
		WHERE patient_id = $1
		ORDER BY uploaded_at DESC
	`
	files := []*model.PatientFile{}
	if err := r.db.SelectContext(ctx, &files, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

func (r *patientFileRepository) Get(ctx context.Context, patientID, fileID uuid.UUID) (*model.PatientFile, error) {
	query := `
		SELECT id, patient_id, name, content_type, size, data, uploaded_at
		FROM patient_files
		WHERE id = $1 AND patient_id = $2
	`
	var file model.PatientFile
	if err := r.db.GetContext(ctx, &file, query, fileID, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("file", err)
		}
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return &file, nil
}
