package database

import (
	"pesaswift/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.LoanApplication{},
		&models.Loan{},
		&models.Repayment{},
	); err != nil {
		return err
	}

	// bank_rates is truncated and refilled by the scraper, keep it plain SQL
	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS bank_rates (
			id SERIAL PRIMARY KEY,
			bank_name VARCHAR(255),
			product VARCHAR(255),
			daily_rate DECIMAL(5,2),
			max_amount BIGINT,
			term VARCHAR(64),
			url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return err
	}

	return nil
}
