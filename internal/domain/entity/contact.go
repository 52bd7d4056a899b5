package entity

import (
	"time"
)

// Contact represents a person we may call: either a plain phonebook entry
// (name only) or a booked appointment (scheduled date + time set).
// ScheduledTime is stored as "HH:MM" to match the slot grid.
type Contact struct {
	PhoneNumber   string     `gorm:"primaryKey;type:varchar(20)" json:"phone_number"`
	Name          *string    `gorm:"type:varchar(255)" json:"name,omitempty"`
	ScheduledDate *time.Time `gorm:"type:date;index" json:"scheduled_date,omitempty"`
	ScheduledTime *string    `gorm:"type:varchar(5)" json:"scheduled_time,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

// HasSchedule reports whether both scheduled fields are present.
func (c *Contact) HasSchedule() bool {
	return c.ScheduledDate != nil && c.ScheduledTime != nil
}
