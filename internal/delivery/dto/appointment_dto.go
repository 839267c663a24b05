package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type AppointmentRequest struct {
	Duration  int    `json:"duration" validate:"omitempty,min=1"`
	Fecha     string `json:"fecha" validate:"required"`
	Hora      string `json:"hora" validate:"required"`
	PatientID int    `json:"patient_id" validate:"required,min=1"`
	IsUrgent  bool   `json:"is_urgent"`
}

// PatientRef identifies an existing patient inside a patch payload
type PatientRef struct {
	ID *int `json:"id"`
}

// AppointmentPatchRequest is a sparse update: only non-nil fields are
// applied, always in the same order (duration, fecha, hora, state,
// sessionNotes, patient).
type AppointmentPatchRequest struct {
	Duration     *int        `json:"duration"`
	Fecha        *string     `json:"fecha"`
	Hora         *string     `json:"hora"`
	State        *string     `json:"state"`
	SessionNotes *string     `json:"sessionNotes"`
	Patient      *PatientRef `json:"patient"`
}

type ToggleBlockRequest struct {
	Fecha string `json:"fecha" validate:"required"`
	Hora  string `json:"hora" validate:"required"`
	Block *bool  `json:"block" validate:"required"`
}

type SessionNotesRequest struct {
	Notes *string `json:"notes"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           uuid.UUID        `json:"id"`
	Duration     int              `json:"duration"`
	Fecha        string           `json:"fecha"`
	Hora         string           `json:"hora"`
	Status       string           `json:"status"`
	SessionNotes string           `json:"session_notes,omitempty"`
	IsUrgent     bool             `json:"is_urgent"`
	Patient      *PatientResponse `json:"patient,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type ToggleBlockResponse struct {
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

type SessionNotesResponse struct {
	Notes string `json:"notes"`
}
