package repository

import (
	"go-voice-call-reminder/internal/domain/entity"

	"gorm.io/gorm"
)

// PrescriptionRepository reads prescriptions written by the upstream
// patient-records system; this service never creates them.
type PrescriptionRepository interface {
	FindAllWithReminder(db *gorm.DB) ([]entity.Prescription, error)
}
