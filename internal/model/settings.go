package model

import (
	"github.com/google/uuid"
)

// ClinicSettings holds the per-account clinic display and contact
// settings plus the reminder message template. At most one row exists
// per account; it is created lazily on first save.
type ClinicSettings struct {
	Base
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	Name             string    `db:"name" json:"name"`
	Address          string    `db:"address" json:"address"`
	Phone            string    `db:"phone" json:"phone"`
	Email            string    `db:"email" json:"email"`
	OpeningTime      string    `db:"opening_time" json:"opening_time"`
	ClosingTime      string    `db:"closing_time" json:"closing_time"`
	ReminderTemplate string    `db:"reminder_template" json:"reminder_template"`
}

const DefaultReminderTemplate = "Hello {patient}, this is a reminder of your appointment at {clinic} on {date} at {time}."

// DefaultSettings is what GET returns before the account ever saved.
func DefaultSettings(userID uuid.UUID) *ClinicSettings {
	return &ClinicSettings{
		UserID:           userID,
		OpeningTime:      "08:00",
		ClosingTime:      "18:00",
		ReminderTemplate: DefaultReminderTemplate,
	}
}

type SaveSettingsRequest struct {
	Name             string `json:"name" binding:"max=200"`
	Address          string `json:"address" binding:"max=300"`
	Phone            string `json:"phone" binding:"max=30"`
	Email            string `json:"email" binding:"omitempty,email"`
	OpeningTime      string `json:"opening_time" binding:"omitempty,datetime=15:04"`
	ClosingTime      string `json:"closing_time" binding:"omitempty,datetime=15:04"`
	ReminderTemplate string `json:"reminder_template" binding:"max=2000"`
}
