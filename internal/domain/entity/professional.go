package entity

import "time"

// Professional is the single practitioner owning the agenda. The deployment
// is single-tenant; the active row id comes from configuration.
type Professional struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:ProfessionalID" json:"appointments,omitempty"`
}

func (Professional) TableName() string {
	return "professionals"
}
