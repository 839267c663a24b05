package repository

import (
	"errors"
	"time"

	"sgtpi-agenda/internal/domain/entity"
	domainRepo "sgtpi-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Save(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Reminder").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDateTime(db *gorm.DB, slot time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Where("fecha_hora = ?", slot).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDateTimeAndStatus(db *gorm.DB, slot time.Time, status entity.AppointmentStatus) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("fecha_hora = ? AND status = ?", slot, status).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDateTimeExcludingIDAndStatusIn(db *gorm.DB, slot time.Time, excludeID uuid.UUID, statuses []entity.AppointmentStatus) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("fecha_hora = ? AND id != ? AND status IN ?", slot, excludeID, statuses).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// DeleteByDateTimeAndStatus hard-deletes the row occupying the slot only when
// it holds the given status. Used to purge synthetic BLOQUEADO placeholders.
func (r *appointmentRepository) DeleteByDateTimeAndStatus(db *gorm.DB, slot time.Time, status entity.AppointmentStatus) (int64, error) {
	result := db.Where("fecha_hora = ? AND status = ?", slot, status).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) FindAll(db *gorm.DB) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").Order("fecha_hora ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDay(db *gorm.DB, day time.Time) ([]entity.Appointment, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("fecha_hora >= ? AND fecha_hora < ?", start, end).
		Order("fecha_hora ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("patient_id = ?", patientID).
		Order("fecha_hora DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByStatus(db *gorm.DB, status entity.AppointmentStatus) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("status = ?", status).
		Order("fecha_hora DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBetweenDates(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Patient").
		Where("fecha_hora >= ? AND fecha_hora <= ?", from, to).
		Order("fecha_hora ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// MarkRealizadoBefore promotes every past CONFIRMADO slot to REALIZADO in a
// single statement. Returns affected rows.
func (r *appointmentRepository) MarkRealizadoBefore(db *gorm.DB, before time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("status = ? AND fecha_hora < ?", entity.StatusConfirmado, before).
		Update("status", entity.StatusRealizado)
	return result.RowsAffected, result.Error
}
