package repository

import (
	"time"

	"go-voice-call-reminder/internal/domain/entity"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(db *gorm.DB, contact *entity.Contact) error
	FindByPhoneNumber(db *gorm.DB, phoneNumber string) (*entity.Contact, error)
	FindAll(db *gorm.DB) ([]entity.Contact, error)
	Update(db *gorm.DB, contact *entity.Contact) error
	CountBySlot(db *gorm.DB, date time.Time, slotTime string) (int64, error)
	CountByDate(db *gorm.DB, date time.Time) (map[string]int64, error)
}
