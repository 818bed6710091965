package database

import (
	"os"
	"time"

	"pesaswift/models"
	"pesaswift/utils"

	"gorm.io/gorm"
)

// SeedDemoUser creates a sandbox borrower with one disbursed loan and a
// repayment, so /auth/login and the dashboard work against a fresh database.
// Production rows come from the back-office once an application clears
// review. Only runs when SEED_DEMO_USER=true and the users table is empty.
func SeedDemoUser(db *gorm.DB) error {
	if os.Getenv("SEED_DEMO_USER") != "true" {
		return nil
	}
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("1234")
	if err != nil {
		return err
	}
	phone := "0712345678"
	name := "Demo Borrower"
	user := models.User{
		Phone:    &phone,
		Name:     &name,
		PINHash:  hash,
		Verified: true,
		Role:     "user",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	disbursed := time.Now().AddDate(0, 0, -10)
	loan := models.Loan{
		UserID:      user.ID,
		Principal:   5000,
		TermDays:    30,
		Fee:         250,
		Interest:    1500,
		Balance:     4750,
		Status:      models.LoanStatusDisbursed,
		DueDate:     disbursed.AddDate(0, 0, 30),
		DisbursedAt: disbursed,
	}
	if err := db.Create(&loan).Error; err != nil {
		return err
	}

	repayment := models.Repayment{
		LoanID: loan.ID,
		UserID: user.ID,
		Amount: 2000,
		PaidAt: disbursed.AddDate(0, 0, 5),
	}
	return db.Create(&repayment).Error
}
