package db

import (
	"errors" // Error matching

	"atm_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SeedAdmin creates the admin account from configuration if it does not
// exist yet. Registration through the menu always creates regular users,
// so this is the only path that produces an admin.
func SeedAdmin(conn *gorm.DB, username, password, pin string) error {
	// Nothing to seed without full admin credentials
	if username == "" || password == "" || pin == "" {
		return nil
	}
	var admin domain.User // Existing admin account, if any
	err := conn.Where("username = ?", username).First(&admin).Error
	if err == nil {
		logrus.Info("Admin user already exists.") // Log and keep the existing account
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err // Any other store error aborts seeding
	}
	// Hash the password and PIN independently
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	// Create the admin account
	admin = domain.User{
		Username: username,             // Admin username
		Password: string(passwordHash), // Hashed password
		Pin:      string(pinHash),      // Hashed PIN
		IsAdmin:  true,                 // Role flag
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Admin user created") // Log admin creation
	return nil
}
