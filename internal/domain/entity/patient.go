package entity

import "time"

// Patient represents a patient of the practice
type Patient struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName         string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName          string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email             *string   `gorm:"type:varchar(255)" json:"email,omitempty"`
	PhoneNumber       string    `gorm:"type:varchar(30);not null" json:"phone_number"`
	FirstConsultation *string   `gorm:"type:varchar(255)" json:"first_consultation,omitempty"`
	Observations      *string   `gorm:"type:text" json:"observations,omitempty"`
	UsualSchedule     *string   `gorm:"type:varchar(100)" json:"usual_schedule,omitempty"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// HasEmail reports whether the patient can receive email notifications
func (p *Patient) HasEmail() bool {
	return p != nil && p.Email != nil && *p.Email != ""
}

// FullName joins first and last name for display
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
