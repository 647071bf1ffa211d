package cli

import (
	"bufio"   // Buffered line reader for the prompts
	"errors"  // Error matching
	"fmt"     // Prompt/response formatting
	"io"      // Reader/writer abstraction, injectable for tests
	"strings" // Input trimming
	"time"    // Timestamp formatting

	"atm_system/internal/directory" // Account directory component
	"atm_system/internal/domain"    // Importing domain models
	"atm_system/internal/ledger"    // Ledger service component
	"atm_system/internal/utils"     // Session token helpers

	"github.com/shopspring/decimal" // Fixed-point money type
	"gorm.io/gorm"                  // GORM ORM library
)

// App is the interactive menu adapter. It owns no business rules: every
// choice is translated into one synchronous call on the directory or the
// ledger, and every failure is printed and the menu shown again. The
// process never terminates on a business-rule failure.
type App struct {
	db     *gorm.DB             // Store handle for the admin role re-check
	dir    *directory.Directory // Account directory
	ledger *ledger.Ledger       // Ledger service
	secret string               // Session token secret
	in     *bufio.Scanner       // Line-based input
	out    io.Writer            // Line-based output
	eof    bool                 // Input exhausted; menus treat this as Exit/Logout
}

// New creates the menu adapter over the core components
func New(db *gorm.DB, dir *directory.Directory, ldg *ledger.Ledger, secret string, in io.Reader, out io.Writer) *App {
	return &App{
		db:     db,                    // Store handle
		dir:    dir,                   // Account directory
		ledger: ldg,                   // Ledger service
		secret: secret,                // Session token secret
		in:     bufio.NewScanner(in),  // Line-based input
		out:    out,                   // Line-based output
	}
}

// prompt prints a label and reads one trimmed line of input. At end of
// input it sets the eof flag so the menu loops wind down instead of
// spinning on empty answers.
func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label) // Print the prompt
	if !a.in.Scan() {
		a.eof = true // Input exhausted
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

// promptAmount reads a positive decimal amount; a second value reports validity
func (a *App) promptAmount(label string) (decimal.Decimal, bool) {
	raw := a.prompt(label) // Read the raw amount
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		fmt.Fprintln(a.out, "Invalid amount!") // Reject unparsable or non-positive input
		return decimal.Zero, false
	}
	return amount, true
}

// Run drives the top-level menu until the user exits
func (a *App) Run() {
	for {
		// Top-level menu
		fmt.Fprintln(a.out, "\n--- ATM System ---")
		fmt.Fprintln(a.out, "1. Register")
		fmt.Fprintln(a.out, "2. Login")
		fmt.Fprintln(a.out, "3. Exit")
		choice := a.prompt("Enter choice: ")
		if a.eof {
			return // End of input is an Exit
		}
		switch choice {
		case "1":
			a.register() // Registration flow
		case "2":
			a.login() // Login flow
		case "3":
			return // Exit the process loop
		default:
			fmt.Fprintln(a.out, "Invalid choice!")
		}
	}
}

// register prompts for credentials and creates a regular user account
func (a *App) register() {
	in := directory.RegisterInput{
		Username: a.prompt("Enter username: "),     // Username
		Password: a.prompt("Enter password: "),     // Password
		Pin:      a.prompt("Enter 4-digit PIN: "),  // PIN
	}
	// The menu only ever creates regular users; admins are seeded from config
	if _, err := a.dir.Register(in); err != nil {
		if errors.Is(err, directory.ErrDuplicateUsername) {
			fmt.Fprintln(a.out, "Username already exists.")
		} else {
			fmt.Fprintln(a.out, "Registration failed:", err)
		}
		return
	}
	fmt.Fprintln(a.out, "User registered successfully!")
}

// login runs the two-step authentication (credentials, then PIN), mints a
// session token and enters the role-specific sub-menu
func (a *App) login() {
	username := a.prompt("Enter username: ") // Username
	password := a.prompt("Enter password: ") // Password
	userID, isAdmin, err := a.dir.AuthenticateCredentials(username, password)
	if err != nil {
		// Unknown username and wrong password print the same message
		fmt.Fprintln(a.out, "Invalid credentials!")
		return
	}
	// Second factor: the PIN
	if !a.dir.AuthenticatePin(userID, a.prompt("Enter PIN: ")) {
		fmt.Fprintln(a.out, "Invalid PIN!")
		return
	}
	// Mint the session token carried through the sub-menu
	token, err := utils.GenerateJWT(userID, isAdmin, a.secret)
	if err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return
	}
	if isAdmin {
		fmt.Fprintln(a.out, "Admin Access Granted")
		a.adminMenu(token) // Admin sub-menu
	} else {
		a.userMenu(token) // Regular user sub-menu
	}
}

// session validates the token carried by the current sub-menu and returns
// its claims. A missing or expired token ends the session.
func (a *App) session(token string) (*utils.Claims, bool) {
	claims, err := utils.ParseJWT(token, a.secret)
	if err != nil {
		fmt.Fprintln(a.out, "Session expired. Please log in again.")
		return nil, false
	}
	return claims, true
}

// requireAdmin re-checks the stored role for the session user, so a token
// alone is never enough for the audit view
func (a *App) requireAdmin(claims *utils.Claims) bool {
	var user domain.User // Fetch the user backing the session
	if err := a.db.First(&user, claims.UserID).Error; err != nil {
		fmt.Fprintln(a.out, "Admin access required")
		return false
	}
	// Check the stored role flag
	if !user.IsAdmin {
		fmt.Fprintln(a.out, "Admin access required")
		return false
	}
	return true
}

// userMenu loops over the money operations for a regular user
func (a *App) userMenu(token string) {
	for {
		// Regular user sub-menu
		fmt.Fprintln(a.out, "\n1. Check Balance\n2. Deposit\n3. Withdraw\n4. Transfer\n5. Transaction History\n6. Logout")
		choice := a.prompt("Choose an option: ")
		if choice == "6" || a.eof {
			return // Logout, also on end of input
		}
		// Every operation revalidates the session token first
		claims, ok := a.session(token)
		if !ok {
			return
		}
		switch choice {
		case "1":
			a.checkBalance(claims.UserID) // Balance inquiry
		case "2":
			a.deposit(claims.UserID) // Deposit flow
		case "3":
			a.withdraw(claims.UserID) // Withdrawal flow
		case "4":
			a.transfer(claims.UserID) // Transfer flow
		case "5":
			a.history(claims.UserID) // Transaction history
		default:
			fmt.Fprintln(a.out, "Invalid option!")
		}
	}
}

// adminMenu loops over the audit views for an admin
func (a *App) adminMenu(token string) {
	for {
		// Admin sub-menu
		fmt.Fprintln(a.out, "\n1. View All Transactions\n2. View Users\n3. Logout")
		choice := a.prompt("Choose an option: ")
		if choice == "3" || a.eof {
			return // Logout, also on end of input
		}
		// Every operation revalidates the session token and the stored role
		claims, ok := a.session(token)
		if !ok {
			return
		}
		if !a.requireAdmin(claims) {
			return
		}
		switch choice {
		case "1":
			a.allTransactions() // Full transaction audit
		case "2":
			a.allUsers() // User listing
		default:
			fmt.Fprintln(a.out, "Invalid option!")
		}
	}
}

// checkBalance prints the current balance for the session user
func (a *App) checkBalance(userID uint) {
	balance, err := a.dir.GetBalance(userID)
	if err != nil {
		fmt.Fprintln(a.out, "Balance lookup failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Balance:", balance.StringFixed(2))
}

// deposit prompts for an amount and credits the session user
func (a *App) deposit(userID uint) {
	amount, ok := a.promptAmount("Enter amount to deposit: ")
	if !ok {
		return
	}
	if err := a.ledger.Deposit(userID, amount); err != nil {
		fmt.Fprintln(a.out, "Deposit failed:", err)
		return
	}
	fmt.Fprintln(a.out, "Deposit successful!")
}

// withdraw prompts for an amount and debits the session user
func (a *App) withdraw(userID uint) {
	amount, ok := a.promptAmount("Enter amount to withdraw: ")
	if !ok {
		return
	}
	if err := a.ledger.Withdraw(userID, amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			fmt.Fprintln(a.out, "Insufficient funds!")
		} else {
			fmt.Fprintln(a.out, "Withdrawal failed:", err)
		}
		return
	}
	fmt.Fprintln(a.out, "Withdrawal successful!")
}

// transfer prompts for a receiver and an amount and moves the money
func (a *App) transfer(userID uint) {
	receiver := a.prompt("Enter receiver's username: ") // Receiver username
	amount, ok := a.promptAmount("Enter amount to transfer: ")
	if !ok {
		return
	}
	if err := a.ledger.Transfer(userID, receiver, amount); err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnknownReceiver):
			fmt.Fprintln(a.out, "Receiver not found.")
		case errors.Is(err, ledger.ErrInsufficientFunds):
			fmt.Fprintln(a.out, "Insufficient funds!")
		case errors.Is(err, ledger.ErrSelfTransfer):
			fmt.Fprintln(a.out, "Cannot transfer to yourself.")
		default:
			fmt.Fprintln(a.out, "Transfer failed:", err)
		}
		return
	}
	fmt.Fprintln(a.out, "Transfer successful!")
}

// history prints the session user's own ledger rows in creation order
func (a *App) history(userID uint) {
	txs, err := a.ledger.ListUserTransactions(userID)
	if err != nil {
		fmt.Fprintln(a.out, "History lookup failed:", err)
		return
	}
	for _, t := range txs {
		a.printTransaction(t)
	}
}

// allTransactions prints the full audit log in creation order
func (a *App) allTransactions() {
	txs, err := a.ledger.ListAllTransactions()
	if err != nil {
		fmt.Fprintln(a.out, "Audit lookup failed:", err)
		return
	}
	for _, t := range txs {
		a.printTransaction(t)
	}
}

// allUsers prints every account with its balance and role
func (a *App) allUsers() {
	users, err := a.dir.ListUsers()
	if err != nil {
		fmt.Fprintln(a.out, "User lookup failed:", err)
		return
	}
	for _, u := range users {
		role := "user" // Printable role
		if u.IsAdmin {
			role = "admin"
		}
		fmt.Fprintf(a.out, "[%d] %s balance=%s role=%s\n", u.ID, u.Username, u.Balance.StringFixed(2), role)
	}
}

// printTransaction prints one ledger row as a single line
func (a *App) printTransaction(t domain.Transaction) {
	ts := time.UnixMilli(t.CreatedAt).Format(time.RFC3339) // Row timestamp
	fmt.Fprintf(a.out, "[%d] user=%d %s %s %s\n", t.ID, t.UserID, t.Type, t.Amount.StringFixed(2), ts)
}
