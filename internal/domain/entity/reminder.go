package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendMethod is the delivery channel of a reminder
type SendMethod string

const (
	SendMethodEmail SendMethod = "EMAIL"
)

// Reminder is a scheduled notification owned 1:1 by an appointment
type Reminder struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	SendTime      time.Time  `gorm:"not null;index" json:"send_time"`
	Method        SendMethod `gorm:"type:varchar(10);not null" json:"method"`
	IsConfirmed   bool       `gorm:"not null;default:false" json:"is_confirmed"`
	IsSent        bool       `gorm:"column:is_sent;not null;default:false;index" json:"is_sent"`
	AppointmentID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"appointment_id"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Reminder) TableName() string {
	return "reminders"
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// MarkSent retires the reminder so the sweep never picks it up again
func (r *Reminder) MarkSent() {
	r.IsSent = true
}
