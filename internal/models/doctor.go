package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList stores a []string as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("models: unsupported type for StringList")
}

type Doctor struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID;references:UserID;constraint:OnDelete:CASCADE;" json:"user"`

	YearsExperience int        `gorm:"column:yeo;default:0" json:"yeo"`
	Specialization  string     `gorm:"size:100;not null" json:"specialization"`
	Services        StringList `gorm:"type:jsonb" json:"services"`

	// Free-form availability hints entered at signup; the bookable
	// capacity lives in slots and recurring_availabilities.
	AvailabilitySchedule json.RawMessage `gorm:"type:jsonb" json:"availability_schedule"`
}
