package models

import "time"

const (
	LoanStatusPending   = "PENDING"
	LoanStatusApproved  = "APPROVED"
	LoanStatusRejected  = "REJECTED"
	LoanStatusDisbursed = "DISBURSED"
	LoanStatusOverdue   = "OVERDUE"
	LoanStatusPaid      = "PAID"
)

type Loan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Principal   int       `json:"principal"`
	TermDays    int       `json:"term_days"`
	Fee         int       `json:"fee"`
	Interest    int       `json:"interest"`
	Balance     int       `json:"balance"`
	Status      string    `gorm:"index" json:"status"`
	DueDate     time.Time `json:"due_date"`
	DisbursedAt time.Time `json:"disbursed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LoanID    uint      `gorm:"index" json:"loan_id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Amount    int       `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}
