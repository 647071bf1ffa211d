package directory

import (
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"atm_system/internal/domain" // Importing domain models

	"github.com/go-playground/validator/v10" // Input validation
	"github.com/shopspring/decimal"          // Fixed-point money type
	"golang.org/x/crypto/bcrypt"             // Password hashing
	"gorm.io/gorm"                           // GORM ORM library
)

// Directory owns the user records: credentials, PIN, balance and role.
// It never mutates balances itself; that is the ledger's job.
type Directory struct {
	db       *gorm.DB            // Injected store handle
	validate *validator.Validate // Validator for registration input
}

// New creates a Directory on top of the given store
func New(db *gorm.DB) *Directory {
	return &Directory{db: db, validate: validator.New()}
}

// RegisterInput is the validated input for Register
type RegisterInput struct {
	Username string `validate:"required"`             // Username must be provided
	Password string `validate:"required"`             // Password must be provided
	Pin      string `validate:"required,len=4,numeric"` // PIN must be exactly 4 digits
	IsAdmin  bool   // Role flag, defaults to a regular user
}

// Register creates a new user with independently hashed password and PIN
// and a zero balance. Usernames are case-sensitive and immutable; a taken
// username fails with ErrDuplicateUsername and writes nothing.
func (d *Directory) Register(in RegisterInput) (uint, error) {
	// Validate the input before touching the store
	if err := d.validate.Struct(in); err != nil {
		return 0, fmt.Errorf("invalid registration input: %w", err)
	}
	// Hash the password and PIN independently
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(in.Pin), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash pin: %w", err)
	}
	user := domain.User{
		Username: in.Username,          // Case-sensitive username
		Password: string(passwordHash), // Hashed password
		Pin:      string(pinHash),      // Hashed PIN
		Balance:  decimal.Zero,         // New accounts start empty
		IsAdmin:  in.IsAdmin,           // Role flag
	}
	// Uniqueness check and insert commit together or not at all
	err = d.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.User // Any user already holding the username
		err := tx.Where("username = ?", in.Username).First(&existing).Error
		if err == nil {
			return ErrDuplicateUsername // Username is taken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("lookup username: %w", err) // Store error
		}
		// Create the user. The unique username column backstops the
		// lookup above; a constraint violation is still a duplicate.
		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateUsername
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil // Commit transaction
	})
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// AuthenticateCredentials checks a username/password pair and returns the
// user's id and role flag. Unknown usernames and wrong passwords both fail
// with ErrInvalidCredentials.
func (d *Directory) AuthenticateCredentials(username, password string) (uint, bool, error) {
	var user domain.User // Fetch user from the store
	if err := d.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, ErrInvalidCredentials // Unknown username
		}
		return 0, false, fmt.Errorf("lookup user: %w", err) // Store error
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return 0, false, ErrInvalidCredentials // Wrong password
	}
	return user.ID, user.IsAdmin, nil
}

// AuthenticatePin reports whether pin matches the stored PIN for the user.
// An unknown id or a store failure reads as a mismatch.
func (d *Directory) AuthenticatePin(userID uint, pin string) bool {
	var user domain.User // Fetch user from the store
	if err := d.db.First(&user, userID).Error; err != nil {
		return false
	}
	// Compare provided PIN with stored hash
	return bcrypt.CompareHashAndPassword([]byte(user.Pin), []byte(pin)) == nil
}

// GetBalance returns the current balance for the user, or ErrUnknownUser
// if the id does not exist.
func (d *Directory) GetBalance(userID uint) (decimal.Decimal, error) {
	var user domain.User // Fetch user from the store
	if err := d.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrUnknownUser // No such user id
		}
		return decimal.Zero, fmt.Errorf("lookup user: %w", err) // Store error
	}
	return user.Balance, nil
}

// ListUsers returns every user record in creation order, for the admin view
func (d *Directory) ListUsers() ([]domain.User, error) {
	var users []domain.User // Slice to hold users
	if err := d.db.Order("id asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
