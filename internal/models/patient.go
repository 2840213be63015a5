package models

type Patient struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE;" json:"user"`

	Weight         float64 `gorm:"type:decimal(5,2)" json:"weight"`
	Height         float64 `gorm:"type:decimal(5,2)" json:"height"`
	MedicalHistory string  `gorm:"type:text" json:"medical_history"`
}
