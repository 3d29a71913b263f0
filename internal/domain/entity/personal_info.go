package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PersonalInfo holds the demographic profile of a user. The row is created
// empty at signup and filled in by profile completion.
type PersonalInfo struct {
	UserEmail string              `gorm:"type:varchar(255);primaryKey" json:"user_email"`
	Birthday  *time.Time          `gorm:"type:date" json:"birthday,omitempty"`
	Gender    string              `gorm:"type:varchar(20)" json:"gender,omitempty"`
	Weight    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"weight"`
	Height    decimal.NullDecimal `gorm:"type:decimal(5,2)" json:"height"`
	BloodType string              `gorm:"type:varchar(5)" json:"blood_type,omitempty"`
	Work      string              `gorm:"type:varchar(255)" json:"work,omitempty"`
	UpdatedAt time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PersonalInfo) TableName() string {
	return "personal_info"
}

// PatientSummary is a read model: a user who has sent reports to a doctor.
type PatientSummary struct {
	Email    string
	Name     string
	Image    []byte
	Birthday *time.Time
	Work     string
}

// AgeAt returns completed years between birthday and now, or 0 when unknown.
func AgeAt(birthday *time.Time, now time.Time) int {
	if birthday == nil || birthday.IsZero() {
		return 0
	}
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
