package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RescheduleHistory struct {
	RescheduleID string `gorm:"column:reschedule_id;type:uuid;primaryKey" json:"reschedule_id"`

	AppointmentID string      `gorm:"column:appointment_id;type:uuid;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID;references:AppointmentID;constraint:OnDelete:CASCADE;" json:"-"`

	OriginalDate string `gorm:"type:date" json:"original_date"`
	NewDate      string `gorm:"type:date" json:"new_date"`
	Reason       string `gorm:"type:text" json:"reason"`

	LoggedAt time.Time `gorm:"autoCreateTime" json:"logged_at"`
}

func (h *RescheduleHistory) BeforeCreate(tx *gorm.DB) error {
	if h.RescheduleID == "" {
		h.RescheduleID = uuid.NewString()
	}
	return nil
}
