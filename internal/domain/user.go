package domain

import "github.com/shopspring/decimal" // Fixed-point money type

// User Model
type User struct {
	ID       uint            `gorm:"primaryKey"`         // Primary key, assigned at creation
	Username string          `gorm:"unique;not null"`    // Unique username, case-sensitive, immutable
	Password string          `gorm:"not null"`           // Hashed password, never plaintext
	Pin      string          `gorm:"not null"`           // Hashed PIN, never plaintext
	Balance  decimal.Decimal `gorm:"not null;default:0"` // Account balance, never negative
	IsAdmin  bool            `gorm:"default:false"`      // Role flag, set only at creation
}
