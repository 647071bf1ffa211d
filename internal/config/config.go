package config

import (
	"os" // For environment variables

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	DBPath        string // Path to the SQLite database file
	JWTSecret     string // Session token secret key
	AdminUsername string // Username of the seeded admin account
	AdminPassword string // Password of the seeded admin account
	AdminPin      string // PIN of the seeded admin account
	IsProd        bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{
		DBPath:        os.Getenv("DB_PATH"),           // Path to the SQLite database file
		JWTSecret:     os.Getenv("JWT_SECRET"),        // Session token secret key
		AdminUsername: os.Getenv("ADMIN_USERNAME"),    // Admin username
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),    // Admin password
		AdminPin:      os.Getenv("ADMIN_PIN"),         // Admin PIN
		IsProd:        os.Getenv("IS_PROD") == "true", // Is production environment
	}
	// Default to a local database file next to the binary
	if cfg.DBPath == "" {
		cfg.DBPath = "atm.db"
	}
	return cfg
}
