package entity

import "time"

// Review is read-only reference data shown on a doctor's detail page.
type Review struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorEmail string    `gorm:"type:varchar(255);not null;index" json:"doctor_email"`
	Username    string    `gorm:"type:varchar(255);not null" json:"username"`
	Comment     string    `gorm:"type:text" json:"comment"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
}

func (Review) TableName() string {
	return "reviews"
}
