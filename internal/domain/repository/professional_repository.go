package repository

import (
	"sgtpi-agenda/internal/domain/entity"

	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	FindByID(db *gorm.DB, id int) (*entity.Professional, error)
	EnsureDefault(db *gorm.DB, id int, email string) error
}
