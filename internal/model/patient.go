package model

import (
	"github.com/google/uuid"
)

type Patient struct {
	Base
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email,omitempty"`
	Phone       string    `db:"phone" json:"phone,omitempty"`
	Address     string    `db:"address" json:"address,omitempty"`
	DateOfBirth string    `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
}

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone" binding:"max=30"`
	Address     string `json:"address" binding:"max=300"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Notes       string `json:"notes" binding:"max=2000"`
}

type UpdatePatientRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=200"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Address     *string `json:"address" binding:"omitempty,max=300"`
	DateOfBirth *string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes" binding:"omitempty,max=2000"`
}
