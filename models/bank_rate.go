package models

import "time"

// BankRate is one row of the scraped digital-lender rate comparison table.
type BankRate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BankName  string    `json:"bank_name"`
	Product   string    `json:"product"`
	DailyRate float64   `json:"daily_rate"`
	MaxAmount int64     `json:"max_amount"`
	Term      string    `json:"term"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
