package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pesaswift/config"
	"pesaswift/database"
	"pesaswift/routes"
	loanServices "pesaswift/services"
	bankServices "pesaswift/services/bank"
	"pesaswift/utils"
)

func main() {
	// All logs and due-date math use Nairobi time
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	if err != nil {
		nairobi = time.FixedZone("EAT", 3*60*60)
	}
	time.Local = nairobi

	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Printf("failed to init logger: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	utils.SetDB(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	if err := database.SeedDemoUser(db); err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	go func() {
		log.Println("Starting background services...")

		bankServices.StartRateCron(db, cfg.RatesBaseURL)
		log.Println("Rate cron started")

		loanServices.StartLoanMaintenanceCron(db)
		log.Println("Loan maintenance cron started")
	}()

	r := routes.SetupRouter(cfg)

	log.Printf("Server is running on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
