package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Medicine is a value object nested inside a prescription. Timing is the
// free-text schedule as entered by the prescriber ("9 am and 9 pm").
type Medicine struct {
	Name         string `json:"name"`
	DurationDays int    `json:"durationDays"`
	Timing       string `json:"timing"`
}

// MedicineList is stored as a JSON column on the prescriptions table.
type MedicineList []Medicine

func (m MedicineList) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *MedicineList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for medicines column: %T", value)
	}

	if len(data) == 0 {
		*m = nil
		return nil
	}
	if err := json.Unmarshal(data, m); err != nil {
		return errors.New("malformed medicines payload")
	}
	return nil
}

// Prescription holds the medicines issued to a patient. Rows with
// MedicineReminder set generate reminder call occurrences, expanded from
// CreatedAt over each medicine's duration.
type Prescription struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	PatientPhone     string       `gorm:"type:varchar(20);not null;index" json:"patient_phone"`
	Medicines        MedicineList `gorm:"type:jsonb" json:"medicines"`
	MedicineReminder bool         `gorm:"not null;default:false;index" json:"medicine_reminder"`
	CreatedAt        time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
