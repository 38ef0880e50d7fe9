package main

import (
	"fmt"
	"log"
	"os"

	"github.com/vncsmyrnk/raffle/internal/adapters/repository"
	"github.com/vncsmyrnk/raffle/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration direction (up or down) is required.")
	}
	direction := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := repository.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := repository.Migrate(cfg, db, direction); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	fmt.Printf("Migrations %s applied successfully to %s.\n", direction, cfg.DatabaseType)
}
