package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is the doctor's answer to a report; one per report.
type Feedback struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID            uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"report_id"`
	DoctorEmail         string    `gorm:"type:varchar(255);not null" json:"doctor_email"`
	UserEmail           string    `gorm:"type:varchar(255);not null" json:"user_email"`
	PrescriptionDetails string    `gorm:"type:text;not null" json:"prescription_details"`
	PrescriptionImage   []byte    `gorm:"type:bytea" json:"-"`
	Feedback            string    `gorm:"type:text" json:"feedback"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
