package main

import (
	"context"
	"fmt"
	"os"

	"karoo-backend/internal/agents"
	"karoo-backend/internal/config"
	"karoo-backend/internal/database"
	"karoo-backend/internal/seed"
)

// Loads the fixture dataset into the configured database and prints
// per-collection counts. Exits 1 if config, connection, or any collection
// fails.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "database:", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}

	svc := &seed.Service{DB: db, Agents: &agents.Service{DB: db}}
	res := svc.SeedAll(context.Background())

	for _, collection := range seed.Collections {
		if n, ok := res.Counts[collection]; ok {
			fmt.Printf("%-16s %d\n", collection, n)
		}
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			fmt.Fprintln(os.Stderr, "error:", e)
		}
		os.Exit(1)
	}
}
