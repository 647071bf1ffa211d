package ledger

import (
	"errors" // Error matching
	"fmt"    // Error wrapping
	"time"   // Timestamps for logging

	"atm_system/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-point money type
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// Ledger implements the balance-mutating operations and the append-only
// transaction log. Every mutation runs inside a single store transaction:
// the balance read, the sufficiency check and all writes commit together
// or not at all, so a failed operation leaves no trace and two concurrent
// debits cannot both pass the same balance check.
type Ledger struct {
	db *gorm.DB // Injected store handle
}

// New creates a Ledger on top of the given store
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// userForUpdate loads a user row inside tx, mapping a missing id to notFound
func userForUpdate(tx *gorm.DB, userID uint, notFound error) (*domain.User, error) {
	var user domain.User // User row to mutate
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound // No such user id
		}
		return nil, fmt.Errorf("lookup user: %w", err) // Store error
	}
	return &user, nil
}

// Deposit credits amount to the user's balance and appends one Deposit row
func (l *Ledger) Deposit(userID uint, amount decimal.Decimal) error {
	// Reject non-positive amounts before touching the store
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	// Balance update and log append commit together
	err := l.db.Transaction(func(tx *gorm.DB) error {
		user, err := userForUpdate(tx, userID, ErrUnknownUser)
		if err != nil {
			return err // Return error to rollback
		}
		// Increment the balance
		if err := tx.Model(user).Update("balance", user.Balance.Add(amount)).Error; err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		// Append the transaction record
		t := domain.Transaction{
			UserID: userID,             // Owning user
			Type:   domain.TypeDeposit, // Transaction type
			Amount: amount,             // Deposit amount
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		return nil // Commit transaction
	})
	// Handle transaction result
	if err != nil {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"user_id": userID,          // User ID
			"amount":  amount.String(), // Deposit amount
			"error":   err.Error(),     // Error message
		}).Error("Deposit failed") // Log deposit failure
		return err
	}
	// Log successful deposit
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"amount":    amount.String(),                 // Deposit amount
		"type":      domain.TypeDeposit,              // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Deposit transaction") // Log deposit success
	return nil
}

// Withdraw debits amount from the user's balance and appends one
// Withdrawal row. The balance check and the debit are part of the same
// transaction; ErrInsufficientFunds leaves balance and log untouched.
func (l *Ledger) Withdraw(userID uint, amount decimal.Decimal) error {
	// Reject non-positive amounts before touching the store
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	err := l.db.Transaction(func(tx *gorm.DB) error {
		user, err := userForUpdate(tx, userID, ErrUnknownUser)
		if err != nil {
			return err // Return error to rollback
		}
		// Check sufficient funds inside the transaction
		if user.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		// Decrement the balance
		if err := tx.Model(user).Update("balance", user.Balance.Sub(amount)).Error; err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}
		// Append the transaction record
		t := domain.Transaction{
			UserID: userID,                // Owning user
			Type:   domain.TypeWithdrawal, // Transaction type
			Amount: amount,                // Withdrawal amount
		}
		if err := tx.Create(&t).Error; err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		return nil // Commit transaction
	})
	// Handle transaction result
	if err != nil {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"user_id": userID,          // User ID
			"amount":  amount.String(), // Withdrawal amount
			"error":   err.Error(),     // Error message
		}).Error("Withdrawal failed") // Log withdrawal failure
		return err
	}
	// Log successful withdrawal
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,                          // User ID
		"amount":    amount.String(),                 // Withdrawal amount
		"type":      domain.TypeWithdrawal,           // Transaction type
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Withdrawal transaction") // Log withdrawal success
	return nil
}

// Transfer moves amount from the sender to the user named by
// receiverUsername. Receiver resolution, the sufficiency check, both
// balance writes and both log rows (Transfer Out for the sender,
// Transfer In for the receiver) form one atomic unit; any failure rolls
// back every write.
func (l *Ledger) Transfer(senderID uint, receiverUsername string, amount decimal.Decimal) error {
	// Reject non-positive amounts before touching the store
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	var receiverID uint // Resolved inside the transaction, kept for logging
	err := l.db.Transaction(func(tx *gorm.DB) error {
		sender, err := userForUpdate(tx, senderID, ErrUnknownUser)
		if err != nil {
			return err // Return error to rollback
		}
		var receiver domain.User // Resolve the receiver by username
		if err := tx.Where("username = ?", receiverUsername).First(&receiver).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownReceiver // No such username
			}
			return fmt.Errorf("lookup receiver: %w", err) // Store error
		}
		// Prevent transferring to self
		if receiver.ID == sender.ID {
			return ErrSelfTransfer
		}
		// Check sufficient funds inside the transaction
		if sender.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		receiverID = receiver.ID
		// Deduct from sender
		if err := tx.Model(sender).Update("balance", sender.Balance.Sub(amount)).Error; err != nil {
			return fmt.Errorf("debit sender: %w", err)
		}
		// Add to receiver
		if err := tx.Model(&receiver).Update("balance", receiver.Balance.Add(amount)).Error; err != nil {
			return fmt.Errorf("credit receiver: %w", err)
		}
		// Append the Transfer Out record for the sender
		out := domain.Transaction{
			UserID: sender.ID,              // Debited user
			Type:   domain.TypeTransferOut, // Transaction type
			Amount: amount,                 // Transfer amount
		}
		if err := tx.Create(&out).Error; err != nil {
			return fmt.Errorf("append transfer out: %w", err)
		}
		// Append the Transfer In record for the receiver
		in := domain.Transaction{
			UserID: receiver.ID,           // Credited user
			Type:   domain.TypeTransferIn, // Transaction type
			Amount: amount,                // Transfer amount
		}
		if err := tx.Create(&in).Error; err != nil {
			return fmt.Errorf("append transfer in: %w", err)
		}
		return nil // Commit transaction
	})
	// Handle transaction result
	if err != nil {
		// Log the error with context
		logrus.WithFields(logrus.Fields{
			"from_user_id": senderID,         // Sender user ID
			"to_username":  receiverUsername, // Receiver username
			"amount":       amount.String(),  // Transfer amount
			"error":        err.Error(),      // Error message
		}).Error("Transfer failed") // Log transfer failure
		return err
	}
	// Log successful transfer
	logrus.WithFields(logrus.Fields{
		"from_user_id": senderID,                        // Sender user ID
		"to_user_id":   receiverID,                      // Receiver user ID
		"amount":       amount.String(),                 // Transfer amount
		"type":         "transfer",                      // Logical event type
		"timestamp":    time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Transfer transaction") // Log transfer success
	return nil
}

// ListAllTransactions returns every ledger row in creation order
// (ascending id). Gating this on the admin role is the caller's job.
func (l *Ledger) ListAllTransactions() ([]domain.Transaction, error) {
	var txs []domain.Transaction // Slice to hold transactions
	if err := l.db.Order("id asc").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

// ListUserTransactions returns the ledger rows for one user in creation order
func (l *Ledger) ListUserTransactions(userID uint) ([]domain.Transaction, error) {
	var txs []domain.Transaction // Slice to hold transactions
	if err := l.db.Where("user_id = ?", userID).Order("id asc").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}
