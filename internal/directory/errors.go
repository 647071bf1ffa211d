package directory

import "errors"

// Domain errors returned by the account directory. All of them leave the
// store unchanged and are recoverable at the caller.
var (
	// ErrDuplicateUsername is returned when registering a username that already exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two cases are deliberately indistinguishable so a
	// failed login leaks nothing about which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnknownUser is returned when a lookup references a user id that does not exist.
	ErrUnknownUser = errors.New("unknown user")
)
