package repository

import (
	"time"

	"sgtpi-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Save(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByDateTime(db *gorm.DB, slot time.Time) (*entity.Appointment, error)
	FindByDateTimeAndStatus(db *gorm.DB, slot time.Time, status entity.AppointmentStatus) (*entity.Appointment, error)
	FindByDateTimeExcludingIDAndStatusIn(db *gorm.DB, slot time.Time, excludeID uuid.UUID, statuses []entity.AppointmentStatus) (*entity.Appointment, error)
	DeleteByDateTimeAndStatus(db *gorm.DB, slot time.Time, status entity.AppointmentStatus) (int64, error)
	FindAll(db *gorm.DB) ([]entity.Appointment, error)
	FindByDay(db *gorm.DB, day time.Time) ([]entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID int) ([]entity.Appointment, error)
	FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error)
	FindBetweenDates(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)
	MarkRealizadoBefore(db *gorm.DB, before time.Time) (int64, error)
}
