package main

import (
	"atm_system/internal/config" // Custom import path (Config)
	"atm_system/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Create or update the schema in the local SQLite file
	db.Migrate(cfg.DBPath)
}
