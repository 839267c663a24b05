package dto

import "time"

// Request DTOs

type PatientRequest struct {
	FirstName         string  `json:"first_name" validate:"required,max=100"`
	LastName          string  `json:"last_name" validate:"required,max=100"`
	Email             *string `json:"email" validate:"omitempty,email"`
	PhoneNumber       string  `json:"phone_number" validate:"required,max=30"`
	FirstConsultation *string `json:"first_consultation"`
	Observations      *string `json:"observations"`
	UsualSchedule     *string `json:"usual_schedule"`
}

// Response DTOs

type PatientResponse struct {
	ID                int       `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email,omitempty"`
	PhoneNumber       string    `json:"phone_number"`
	FirstConsultation string    `json:"first_consultation,omitempty"`
	Observations      string    `json:"observations,omitempty"`
	UsualSchedule     string    `json:"usual_schedule,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
