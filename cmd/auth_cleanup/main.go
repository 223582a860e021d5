// Auth_cleanup purges refresh tokens that are past their ledger expiry.
// Intended to run from cron.
package main

import (
	"context"
	"log"

	_ "github.com/joho/godotenv/autoload"

	"schoolrecords/internal/config"
	"schoolrecords/internal/database"
	"schoolrecords/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	tokens := repository.NewRefreshTokenRepository(db)
	removed, err := tokens.DeleteExpired(context.Background())
	if err != nil {
		log.Fatalf("cleanup: %v", err)
	}
	log.Printf("removed %d expired refresh tokens", removed)
}
