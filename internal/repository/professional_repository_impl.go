package repository

import (
	"errors"

	"sgtpi-agenda/internal/domain/entity"
	domainRepo "sgtpi-agenda/internal/domain/repository"

	"gorm.io/gorm"
)

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) FindByID(db *gorm.DB, id int) (*entity.Professional, error) {
	var professional entity.Professional
	err := db.Where("id = ?", id).First(&professional).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

// EnsureDefault seeds the configured professional row on startup so slot
// synthesis always has a valid owner to attach.
func (r *professionalRepository) EnsureDefault(db *gorm.DB, id int, email string) error {
	return db.Where(entity.Professional{ID: id}).
		Attrs(entity.Professional{Email: email}).
		FirstOrCreate(&entity.Professional{}).Error
}
