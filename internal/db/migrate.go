package db

import (
	"atm_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Open connects to the SQLite database at path. Tests pass
// "file::memory:?cache=shared" to run against an in-memory store.
// Constraint violations are translated so callers can match
// gorm.ErrDuplicatedKey instead of driver-specific errors.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(path string) {
	conn, err := Open(path) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := AutoMigrate(conn); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate creates or updates the users and transactions tables
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(&domain.User{}, &domain.Transaction{})
}
