package main

import (
	"context"
	"flag"
	"log"
	"time"

	"svpportal/internal/config"
	"svpportal/internal/database"
	"svpportal/internal/repository"
	"svpportal/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	certificates := flag.Int("certificates", 10, "random certificates to generate")
	laborResults := flag.Int("labor-results", 10, "random labor results to generate")
	fakerSeed := flag.Int64("seed", 0, "faker seed (0 uses the clock)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer database.Close(db)

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := seed.NewFactory(db, *fakerSeed).Run(ctx, seed.Options{
		Certificates: *certificates,
		LaborResults: *laborResults,
	})
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	if res.AdminCreated {
		log.Printf("admin account: %s / %s", seed.AdminEmail, seed.AdminPassword)
	}
}
