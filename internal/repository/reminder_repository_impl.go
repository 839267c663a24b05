package repository

import (
	"errors"

	"sgtpi-agenda/internal/domain/entity"
	domainRepo "sgtpi-agenda/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reminderRepository struct{}

func NewReminderRepository() domainRepo.ReminderRepository {
	return &reminderRepository{}
}

func (r *reminderRepository) Save(db *gorm.DB, reminder *entity.Reminder) error {
	return db.Save(reminder).Error
}

func (r *reminderRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Reminder, error) {
	var reminder entity.Reminder
	err := db.Preload("Appointment.Patient").Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *reminderRepository) FindAllUnsent(db *gorm.DB) ([]entity.Reminder, error) {
	var reminders []entity.Reminder
	err := db.Preload("Appointment.Patient").
		Where("is_sent = ?", false).
		Order("send_time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}
