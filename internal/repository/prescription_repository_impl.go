package repository

import (
	"go-voice-call-reminder/internal/domain/entity"
	domainRepo "go-voice-call-reminder/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) FindAllWithReminder(db *gorm.DB) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Where("medicine_reminder = ?", true).Order("created_at ASC").Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}
