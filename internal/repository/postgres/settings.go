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

const settingsColumns = `id, user_id, name, address, phone, email, opening_time, closing_time, reminder_template, created_at, updated_at`

func (r *settingsRepository) Get(ctx context.Context, userID uuid.UUID) (*model.ClinicSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM clinic_settings WHERE user_id = $1`
	var settings model.ClinicSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("settings", err)
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &settings, nil
}

// Upsert creates the account's settings row on first save and updates it
// in place afterwards. user_id carries a unique constraint.
func (r *settingsRepository) Upsert(ctx context.Context, settings *model.ClinicSettings) error {
	query := `
		INSERT INTO clinic_settings (id, user_id, name, address, phone, email, opening_time, closing_time, reminder_template, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			reminder_template = EXCLUDED.reminder_template,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + settingsColumns
	now := time.Now()
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	var saved model.ClinicSettings
	err := r.db.GetContext(ctx, &saved, query,
		settings.ID,
		settings.UserID,
		settings.Name,
		settings.Address,
		settings.Phone,
		settings.Email,
		settings.OpeningTime,
		settings.ClosingTime,
		settings.ReminderTemplate,
		settings.CreatedAt,
		settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	*settings = saved
	return nil
}
