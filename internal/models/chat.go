package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Chat struct {
	ChatID string `gorm:"column:chat_id;type:uuid;primaryKey" json:"chat_id"`

	AppointmentID string      `gorm:"column:appointment_id;type:uuid;not null" json:"appointment_id"`
	Appointment   Appointment `gorm:"foreignKey:AppointmentID;references:AppointmentID;constraint:OnDelete:CASCADE;" json:"-"`

	SenderID string `gorm:"column:sender_id;type:uuid" json:"sender_id"`
	Sender   User   `gorm:"foreignKey:SenderID;references:UserID;constraint:OnDelete:SET NULL;" json:"-"`

	Message string `gorm:"type:text;not null" json:"message"`

	Timestamp time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
}

func (ch *Chat) BeforeCreate(tx *gorm.DB) error {
	if ch.ChatID == "" {
		ch.ChatID = uuid.NewString()
	}
	return nil
}
