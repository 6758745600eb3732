package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Valid reports whether s is one of the three defined statuses. There is
// deliberately no transition graph: any status may follow any other.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

type Appointment struct {
	Base
	UserID      uuid.UUID         `db:"user_id" json:"user_id"`
	PatientID   uuid.UUID         `db:"patient_id" json:"patient_id"`
	ScheduledAt WallClock         `db:"scheduled_at" json:"scheduled_at"`
	Type        string            `db:"type" json:"type,omitempty"`
	Notes       string            `db:"notes" json:"notes,omitempty"`
	Attachment  string            `db:"attachment" json:"attachment,omitempty"`
	Status      AppointmentStatus `db:"status" json:"status"`
}

type CreateAppointmentRequest struct {
	PatientID   string `json:"patient_id" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"`
	Type        string `json:"type" binding:"max=100"`
	Notes       string `json:"notes" binding:"max=2000"`
	Status      string `json:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
}

type UpdateAppointmentRequest struct {
	PatientID   *string `json:"patient_id"`
	ScheduledAt *string `json:"scheduled_at"`
	Type        *string `json:"type" binding:"omitempty,max=100"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
	Status      *string `json:"status" binding:"omitempty,oneof=Pending Completed Cancelled"`
}

// AppointmentFilters describes the list projection: an optional inclusive
// calendar-date range and the caller's status set. An empty status set
// yields an empty result by contract.
type AppointmentFilters struct {
	Statuses  []AppointmentStatus
	StartDate *time.Time
	EndDate   *time.Time
}
