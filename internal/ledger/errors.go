package ledger

import "errors"

// Domain errors returned by the ledger. Each one means the operation wrote
// nothing: balances and the transaction log are exactly as they were.
var (
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds is returned when a debit would take a balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnknownReceiver is returned when a transfer names a username that does not exist.
	ErrUnknownReceiver = errors.New("receiver not found")

	// ErrUnknownUser is returned when an operation references a user id that does not exist.
	ErrUnknownUser = errors.New("unknown user")

	// ErrSelfTransfer is returned when sender and receiver are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to yourself")
)
