package services

import (
	"log"
	"time"

	"pesaswift/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Pending-review applications older than this are considered abandoned.
const reviewRetention = 30 * 24 * time.Hour

func markOverdueLoans(db *gorm.DB) {
	res := db.Model(&models.Loan{}).
		Where("status = ? AND due_date < ?", models.LoanStatusDisbursed, time.Now()).
		Update("status", models.LoanStatusOverdue)
	if res.Error != nil {
		log.Printf("failed to mark overdue loans: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("marked %d loans overdue", res.RowsAffected)
	}
}

func purgeStaleApplications(db *gorm.DB) {
	cutoff := time.Now().Add(-reviewRetention)
	res := db.Where("status = ? AND created_at < ?", "PENDING_REVIEW", cutoff).
		Delete(&models.LoanApplication{})
	if res.Error != nil {
		log.Printf("failed to purge stale applications: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("purged %d stale applications", res.RowsAffected)
	}
}

// StartLoanMaintenanceCron runs the daily portfolio housekeeping.
func StartLoanMaintenanceCron(db *gorm.DB) {
	c := cron.New()
	c.AddFunc("30 0 * * *", func() { // every day at 00:30
		markOverdueLoans(db)
		purgeStaleApplications(db)
	})
	c.Start()
}
