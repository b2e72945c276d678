// Command migrate applies or rolls back the database schema.
//
//	migrate up     apply pending migrations (default)
//	migrate down   revert every migration
package main

import (
	"fmt"
	"os"

	"dinelt/internal/config"
	"dinelt/internal/database"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := config.NewLogger(cfg.Logger)

	direction := "up"
	if len(args) > 0 {
		direction = args[0]
	}

	url := cfg.Database.ConnectionString()
	switch direction {
	case "up":
		return database.Migrate(url, logger)
	case "down":
		return database.Rollback(url, logger)
	default:
		return fmt.Errorf("unknown direction %q, want up or down", direction)
	}
}
