package main

import (
	"os" // Stdin/stdout for the interactive menu

	"atm_system/internal/cli"       // Custom package for the menu adapter
	"atm_system/internal/config"    // Custom package for configuration
	"atm_system/internal/db"        // Custom package for the store
	"atm_system/internal/directory" // Account directory component
	"atm_system/internal/ledger"    // Ledger service component

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the interactive ATM
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetLevel(logrus.WarnLevel) // Keep the interactive session quiet in production
	}

	// Connect to the local store
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Create tables, constraints and indexes
	if err := db.AutoMigrate(conn); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	// Seed the admin account from configuration if missing
	if err := db.SeedAdmin(conn, cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPin); err != nil {
		logrus.Fatalf("failed to seed admin user: %v", err)
	}

	// Wire the core components over the shared store
	dir := directory.New(conn) // Account directory
	ldg := ledger.New(conn)    // Ledger service

	// Run the interactive menu until the user exits
	app := cli.New(conn, dir, ldg, cfg.JWTSecret, os.Stdin, os.Stdout)
	app.Run()
}
