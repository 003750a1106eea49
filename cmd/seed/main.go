package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/shopflow/checkout/internal/catalog"
	"github.com/shopflow/checkout/internal/config"
	"github.com/shopflow/checkout/internal/postgres"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	repo := &catalog.Repo{DB: db}
	if err := repo.Seed(ctx, catalog.DefaultProducts); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d products", len(catalog.DefaultProducts))
}
