package repository

import (
	"sgtpi-agenda/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderRepository interface {
	Save(db *gorm.DB, reminder *entity.Reminder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Reminder, error)
	FindAllUnsent(db *gorm.DB) ([]entity.Reminder, error)
}
