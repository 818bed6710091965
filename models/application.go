package models

import (
	"time"

	"gorm.io/datatypes"
)

// LoanApplication is the durable record written once an application reaches
// the review queue. In-flight applications live only in Redis.
type LoanApplication struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	ApplicationID   string `gorm:"uniqueIndex" json:"application_id"`
	FullName        string `json:"full_name"`
	NationalID      string `json:"national_id"`
	PhoneNumber     string `json:"phone_number"`
	DateOfBirth     string `json:"date_of_birth"`
	IncomeBracket   int    `json:"income_bracket"`
	Principal       int    `json:"principal"`
	TermDays        int    `json:"term_days"`
	Fee             int    `json:"fee"`
	Interest        int    `json:"interest"`
	TotalRepayment  int    `json:"total_repayment"`
	ApprovedLimit   int    `json:"approved_limit"`
	TransactionCode string `json:"transaction_code"`
	Status          string `gorm:"default:PENDING_REVIEW" json:"status"`
	// RecordSnapshot keeps the full submitted record for the review team,
	// PIN excluded.
	RecordSnapshot datatypes.JSON `gorm:"type:jsonb" json:"record_snapshot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
