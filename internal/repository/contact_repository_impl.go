package repository

import (
	"errors"
	"time"

	"go-voice-call-reminder/internal/domain/entity"
	domainRepo "go-voice-call-reminder/internal/domain/repository"

	"gorm.io/gorm"
)

type contactRepository struct{}

func NewContactRepository() domainRepo.ContactRepository {
	return &contactRepository{}
}

func (r *contactRepository) Create(db *gorm.DB, contact *entity.Contact) error {
	return db.Create(contact).Error
}

func (r *contactRepository) FindByPhoneNumber(db *gorm.DB, phoneNumber string) (*entity.Contact, error) {
	var contact entity.Contact
	err := db.Where("phone_number = ?", phoneNumber).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindAll(db *gorm.DB) ([]entity.Contact, error) {
	var contacts []entity.Contact
	err := db.Order("scheduled_date ASC, scheduled_time ASC").Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(db *gorm.DB, contact *entity.Contact) error {
	return db.Save(contact).Error
}

func (r *contactRepository) CountBySlot(db *gorm.DB, date time.Time, slotTime string) (int64, error) {
	var count int64
	err := db.Model(&entity.Contact{}).
		Where("scheduled_date = ? AND scheduled_time = ?", date.Format("2006-01-02"), slotTime).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

type slotCount struct {
	ScheduledTime string
	Total         int64
}

// CountByDate returns booked counts keyed by slot time for one calendar day.
func (r *contactRepository) CountByDate(db *gorm.DB, date time.Time) (map[string]int64, error) {
	var rows []slotCount
	err := db.Model(&entity.Contact{}).
		Select("scheduled_time, COUNT(*) as total").
		Where("scheduled_date = ? AND scheduled_time IS NOT NULL", date.Format("2006-01-02")).
		Group("scheduled_time").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ScheduledTime] = row.Total
	}
	return counts, nil
}
