package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dentalcare/clinic-api/internal/model"
	apperrors "github.com/dentalcare/clinic-api/pkg/errors"
)

const appointmentColumns = `id, user_id, patient_id, scheduled_at, type, notes, attachment, status, created_at, updated_at`

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, patient_id, scheduled_at, type, notes, attachment, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.UserID,
		appointment.PatientID,
		appointment.ScheduledAt,
		appointment.Type,
		appointment.Notes,
		appointment.Attachment,
		appointment.Status,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, userID, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 AND user_id = $2`
	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

// Update writes all mutable fields of the row owned by appointment.UserID
// in a single statement. Concurrent updates resolve last-writer-wins.
func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error) {
	query := `
		UPDATE appointments
		SET patient_id = $1, scheduled_at = $2, type = $3, notes = $4, attachment = $5, status = $6, updated_at = $7
		WHERE id = $8 AND user_id = $9
		RETURNING ` + appointmentColumns
	appointment.UpdatedAt = time.Now()

	var updated model.Appointment
	err := r.db.GetContext(ctx, &updated, query,
		appointment.PatientID,
		appointment.ScheduledAt,
		appointment.Type,
		appointment.Notes,
		appointment.Attachment,
		appointment.Status,
		appointment.UpdatedAt,
		appointment.ID,
		appointment.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return &updated, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM appointments WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("appointment", nil)
	}
	return nil
}

// List filters by status set and optional inclusive calendar-date range,
// ordered ascending by the scheduled time. Callers short-circuit the
// empty status set before reaching here; the filter is still mandatory
// in SQL so an empty array can never widen to "all".
func (r *appointmentRepository) List(ctx context.Context, userID uuid.UUID, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id = $1 AND status = ANY($2)`

	statuses := make([]string, 0, len(filters.Statuses))
	for _, s := range filters.Statuses {
		statuses = append(statuses, string(s))
	}
	args := []interface{}{userID, pq.Array(statuses)}
	argCount := 3

	if filters.StartDate != nil && filters.EndDate != nil {
		query += fmt.Sprintf(" AND scheduled_at::date >= $%d::date AND scheduled_at::date <= $%d::date", argCount, argCount+1)
		args = append(args, filters.StartDate.Format("2006-01-02"), filters.EndDate.Format("2006-01-02"))
		argCount += 2
	}

	query += " ORDER BY scheduled_at ASC"

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}
