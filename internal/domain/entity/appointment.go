package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus represents the lifecycle state of an agenda slot
type AppointmentStatus string

const (
	StatusConfirmado AppointmentStatus = "CONFIRMADO"
	StatusCancelado  AppointmentStatus = "CANCELADO"
	StatusRealizado  AppointmentStatus = "REALIZADO"
	StatusEnCurso    AppointmentStatus = "EN_CURSO"
	StatusDisponible AppointmentStatus = "DISPONIBLE"
	StatusBloqueado  AppointmentStatus = "BLOQUEADO"
)

// ActiveStatuses occupy a date-time exclusively: at most one appointment row
// may hold one of these statuses at a given fecha_hora. Enforced by a partial
// unique index (see migrations).
var ActiveStatuses = []AppointmentStatus{StatusConfirmado, StatusBloqueado}

// MoveConflictStatuses block another appointment from being moved onto the
// same date-time.
var MoveConflictStatuses = []AppointmentStatus{StatusConfirmado, StatusBloqueado, StatusCancelado}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusConfirmado, StatusCancelado, StatusRealizado, StatusEnCurso, StatusDisponible, StatusBloqueado:
		return true
	}
	return false
}

// Appointment represents one date-time-keyed slot of the agenda
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Duration       int               `gorm:"not null" json:"duration"`
	Fecha          time.Time         `gorm:"column:fecha_hora;not null;index" json:"fecha_hora"`
	SessionNotes   *string           `gorm:"type:varchar(255)" json:"session_notes,omitempty"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	IsUrgent       bool              `gorm:"not null;default:false" json:"is_urgent"`
	PatientID      *int              `gorm:"index" json:"patient_id,omitempty"`
	ProfessionalID int               `gorm:"not null" json:"professional_id"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      *Patient     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Professional Professional `gorm:"foreignKey:ProfessionalID" json:"professional,omitempty"`
	Reminder     *Reminder    `gorm:"foreignKey:AppointmentID" json:"reminder,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// IsConfirmed checks if the slot holds a confirmed appointment
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmado
}

// IsCancelled checks if the slot holds a cancelled appointment
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelado
}

// IsBlocked checks if the slot is blocked by the professional
func (a *Appointment) IsBlocked() bool {
	return a.Status == StatusBloqueado
}

// IsAvailable checks if the slot is free for booking
func (a *Appointment) IsAvailable() bool {
	return a.Status == StatusDisponible
}

// Release frees the slot: patient and session notes are detached and the
// status becomes DISPONIBLE
func (a *Appointment) Release() {
	a.Status = StatusDisponible
	a.PatientID = nil
	a.Patient = nil
	a.SessionNotes = nil
}

// Block forces the slot into BLOQUEADO. Patient and notes are cleared only
// from CONFIRMADO, DISPONIBLE and CANCELADO slots; a closed appointment
// (REALIZADO, EN_CURSO) keeps its session history.
func (a *Appointment) Block() {
	switch a.Status {
	case StatusConfirmado, StatusDisponible, StatusCancelado:
		a.PatientID = nil
		a.Patient = nil
		a.SessionNotes = nil
	}
	a.Status = StatusBloqueado
}
