package model

import (
	"time"

	"github.com/google/uuid"
)

// PatientFile is a document attached to a patient record. The content
// lives in the database; listing returns metadata only.
type PatientFile struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Name        string    `db:"name" json:"name"`
	ContentType string    `db:"content_type" json:"content_type"`
	Size        int64     `db:"size" json:"size"`
	Data        []byte    `db:"data" json:"-"`
	UploadedAt  time.Time `db:"uploaded_at" json:"uploaded_at"`
}
