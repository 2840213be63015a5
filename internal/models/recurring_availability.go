package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecurringAvailability is a weekly capacity rule. It carries no token
// counter: occupancy for a concrete date is derived until the rule is
// materialized into a Slot by the first booking.
type RecurringAvailability struct {
	RecurringAvailabilityID string `gorm:"column:recurring_availability_id;type:uuid;primaryKey" json:"recurring_availability_id"`

	DoctorUserID string `gorm:"column:doctor_user_id;type:uuid;index:idx_recurring_doctor_weekday;not null" json:"doctorUserId"`
	Doctor       Doctor `gorm:"foreignKey:DoctorUserID;references:UserID" json:"-"`

	// 0=Sunday .. 6=Saturday
	Weekday int    `gorm:"index:idx_recurring_doctor_weekday;not null" json:"weekday"`
	Session string `gorm:"size:50;not null" json:"session"`

	StartTime string `gorm:"type:time;not null" json:"start_time"`
	EndTime   string `gorm:"type:time;not null" json:"end_time"`

	MaxTokens int `gorm:"not null" json:"max_tokens"`
}

func (r *RecurringAvailability) BeforeCreate(tx *gorm.DB) error {
	if r.RecurringAvailabilityID == "" {
		r.RecurringAvailabilityID = uuid.NewString()
	}
	return nil
}
