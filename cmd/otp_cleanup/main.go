package main

import (
	"context"
	"log"
	"time"

	"svpportal/internal/config"
	"svpportal/internal/database"
	"svpportal/internal/repository"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-cfg.OTPRetention)
	removed, err := repository.NewOTPRepository(db).DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("cleanup otp_codes failed: %v", err)
	}

	log.Printf("otp cleanup completed: otp_codes=%d cutoff=%s", removed, cutoff.Format(time.RFC3339))
}
