package services

import (
	"log"
	"os"

	"pesaswift/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func rateURLs(baseURL string) []string {
	return []string{
		baseURL + "/lenders",
		baseURL + "/lenders?page=2",
	}
}

func parseRateURL(url string, logger *log.Logger) []*models.BankRate {
	parser := NewRateParser()
	rates, err := parser.ParseURL(url)
	if err != nil {
		logger.Printf("failed to parse %s: %v", url, err)
		return nil
	}
	return rates
}

func refreshRates(db *gorm.DB, baseURL string) {
	logFile, _ := os.OpenFile("logs/parser_errors.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	logger := log.New(logFile, "", log.LstdFlags)
	defer logFile.Close()

	logger.Printf("refreshing lender rates...")

	var parsed []*models.BankRate
	for _, url := range rateURLs(baseURL) {
		if rates := parseRateURL(url, logger); rates != nil {
			parsed = append(parsed, rates...)
		}
	}
	if len(parsed) == 0 {
		logger.Printf("no rates parsed, keeping previous data")
		return
	}

	db.Exec("TRUNCATE bank_rates")
	for _, rate := range parsed {
		db.Create(rate)
	}
	logger.Printf("lender rates refreshed: %d rows", len(parsed))
}

// StartRateCron seeds the rates table on boot and refreshes it daily.
func StartRateCron(db *gorm.DB, baseURL string) {
	var count int64
	db.Model(&models.BankRate{}).Count(&count)
	if count == 0 {
		refreshRates(db, baseURL)
	}

	c := cron.New()
	c.AddFunc("0 3 * * *", func() { // every day at 03:00
		refreshRates(db, baseURL)
	})
	c.Start()
}
