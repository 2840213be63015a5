package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Slot is a concrete, persisted unit of bookable capacity for one
// (doctor, date, session). tokens_issued is only ever changed under a
// row-level write lock.
type Slot struct {
	SlotID string `gorm:"column:slot_id;type:uuid;primaryKey" json:"slot_id"`

	DoctorUserID string `gorm:"column:doctor_user_id;type:uuid;index:idx_slots_doctor_date;not null" json:"doctorUserId"`
	Doctor       Doctor `gorm:"foreignKey:DoctorUserID;references:UserID" json:"-"`

	Date    string `gorm:"type:date;index:idx_slots_doctor_date;not null" json:"date"`
	Session string `gorm:"size:50;not null" json:"session"`

	StartTime string `gorm:"type:time;not null" json:"start_time"`
	EndTime   string `gorm:"type:time;not null" json:"end_time"`

	MaxTokens    int `gorm:"not null" json:"max_tokens"`
	TokensIssued int `gorm:"default:0" json:"tokens_issued"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Slot) BeforeCreate(tx *gorm.DB) error {
	if s.SlotID == "" {
		s.SlotID = uuid.NewString()
	}
	return nil
}
