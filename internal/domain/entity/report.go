package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
)

// Report is a medical report a user submits to a doctor for review. Its
// status only moves pending -> reviewed, through feedback finalization.
type Report struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail   string       `gorm:"type:varchar(255);not null;index" json:"user_email"`
	DoctorEmail string       `gorm:"type:varchar(255);not null;index" json:"doctor_email"`
	ReportType  string       `gorm:"type:varchar(100);not null" json:"report_type"`
	FileData    []byte       `gorm:"type:bytea;not null" json:"-"`
	Status      ReportStatus `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Report) TableName() string {
	return "medical_reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (r *Report) IsReviewed() bool {
	return r.Status == ReportStatusReviewed
}
