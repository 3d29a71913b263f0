package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorEmail string         `gorm:"type:varchar(255);index" json:"actor_email,omitempty"`
	Action     string         `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata   datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserRegister        = "user.register"
	AuditActionDoctorRegister      = "doctor.register"
	AuditActionSubscriptionCreate  = "subscription.create"
	AuditActionSubscriptionRenew   = "subscription.renew"
	AuditActionReportSubmit        = "report.submit"
	AuditActionReportFeedback      = "report.feedback"
	AuditActionPrescriptionUpload  = "prescription.upload"
	AuditActionPrescriptionProcess = "prescription.process"
	AuditActionOrderCreate         = "order.create"
	AuditActionOrderStatusUpdate   = "order.status_update"
)
