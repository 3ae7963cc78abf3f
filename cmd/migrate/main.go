package main

import (
	"context"
	"log"
	"time"

	"github.com/ritmodivulga/promo-engine/internal/config"
	"github.com/ritmodivulga/promo-engine/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Database.Driver == "memory" {
		log.Println("DATABASE_DRIVER is memory, nothing to migrate")
		return
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema applied (%s)", cfg.Database.Driver)
}
