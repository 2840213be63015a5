package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	AppointmentID string `gorm:"column:appointment_id;type:uuid;primaryKey" json:"appointment_id"`

	DoctorUserID string `gorm:"column:doctor_user_id;type:uuid;index;not null" json:"doctorUserId"`
	Doctor       Doctor `gorm:"foreignKey:DoctorUserID;references:UserID" json:"doctor,omitempty"`

	PatientUserID string  `gorm:"column:patient_user_id;type:uuid;index;not null" json:"patientUserId"`
	Patient       Patient `gorm:"foreignKey:PatientUserID;references:UserID" json:"patient,omitempty"`

	SlotID string `gorm:"column:slot_id;type:uuid" json:"slot_id"`
	Slot   Slot   `gorm:"foreignKey:SlotID;references:SlotID;constraint:OnDelete:CASCADE;" json:"slot,omitempty"`

	// 1-based position on the slot, equal to tokens_issued after the
	// increment that booked it.
	TokenNumber int `gorm:"not null" json:"token_number"`

	Complaint string `gorm:"type:text" json:"complaint"`
	Status    string `gorm:"size:20;default:'SCHEDULED'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.AppointmentID == "" {
		a.AppointmentID = uuid.NewString()
	}
	return nil
}
