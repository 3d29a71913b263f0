package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Billing frequencies as stored in the plan catalog.
const (
	FrequencyMonthly   = "/month"
	FrequencyQuarterly = "/3 month"
)

// Plan is static catalog data keyed by name.
type Plan struct {
	Name              string          `gorm:"type:varchar(100);primaryKey" json:"name"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Frequency         string          `gorm:"type:varchar(50);not null" json:"frequency"`
	ReportUploadLimit int             `gorm:"not null;default:0" json:"report_upload_limit"`
	Features          datatypes.JSON  `gorm:"type:jsonb" json:"features,omitempty"`
}

func (Plan) TableName() string {
	return "plans"
}

// DurationMonths maps the billing frequency to the validity window length.
// Anything that is not an exact monthly or quarterly match is billed yearly.
func (p *Plan) DurationMonths() int {
	switch p.Frequency {
	case FrequencyMonthly:
		return 1
	case FrequencyQuarterly:
		return 3
	default:
		return 12
	}
}
