package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"atm_system/internal/db"
	"atm_system/internal/directory"
	"atm_system/internal/ledger"

	"gorm.io/gorm"
)

// ---- helpers ----

const testSecret = "test-secret"

// newTestApp wires the full stack over an in-memory store
func newTestApp(t *testing.T, script string) (*App, *bytes.Buffer, *gorm.DB) {
	t.Helper()
	conn, err := db.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	out := &bytes.Buffer{}
	app := New(conn, directory.New(conn), ledger.New(conn), testSecret, strings.NewReader(script), out)
	return app, out, conn
}

// script joins menu answers into line-based input
func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func wantOutput(t *testing.T, out *bytes.Buffer, phrases ...string) {
	t.Helper()
	for _, phrase := range phrases {
		if !strings.Contains(out.String(), phrase) {
			t.Fatalf("output missing %q:\n%s", phrase, out.String())
		}
	}
}

// ---- tests ----

func TestRegisterLoginDepositBalance(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111", // register
		"2", "alice", "pass123", "1111", // login: credentials + PIN
		"2", "100", // deposit 100
		"1",      // check balance
		"6", "3", // logout, exit
	))
	app.Run()
	wantOutput(t, out,
		"User registered successfully!",
		"Deposit successful!",
		"Balance: 100.00",
	)
}

func TestDuplicateRegistration(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"1", "alice", "other", "2222",
		"3",
	))
	app.Run()
	wantOutput(t, out, "Username already exists.")
}

func TestInvalidCredentialsAndPin(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"2", "alice", "wrong", // wrong password
		"2", "alice", "pass123", "0000", // wrong PIN
		"3",
	))
	app.Run()
	wantOutput(t, out, "Invalid credentials!", "Invalid PIN!")
}

func TestTransferAndOverdraw(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"1", "bob", "pass456", "2222",
		"2", "alice", "pass123", "1111",
		"2", "100", // deposit 100
		"4", "bob", "40", // transfer 40 to bob
		"3", "1000", // withdraw 1000: overdraw
		"1",      // balance still 60
		"6", "3", // logout, exit
	))
	app.Run()
	wantOutput(t, out,
		"Transfer successful!",
		"Insufficient funds!",
		"Balance: 60.00",
	)
}

func TestTransferToUnknownReceiver(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"2", "alice", "pass123", "1111",
		"2", "100",
		"4", "nonexistent", "10",
		"1",
		"6", "3",
	))
	app.Run()
	wantOutput(t, out, "Receiver not found.", "Balance: 100.00")
}

// Input that ends without an Exit choice must wind the menu down, not
// spin forever on empty answers
func TestRunStopsAtEndOfInput(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111", // register, then the input ends
	))
	app.Run() // Must return once the script is exhausted
	wantOutput(t, out, "User registered successfully!")
	if strings.Contains(out.String(), "Invalid choice!") {
		t.Fatalf("end of input treated as a menu choice:\n%s", out.String())
	}
}

func TestUserMenuStopsAtEndOfInput(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"2", "alice", "pass123", "1111",
		"2", "100", // deposit, then the input ends inside the user menu
	))
	app.Run() // Must return once the script is exhausted
	wantOutput(t, out, "Deposit successful!")
	if strings.Contains(out.String(), "Invalid option!") {
		t.Fatalf("end of input treated as a menu option:\n%s", out.String())
	}
}

func TestRejectsUnparsableAndNegativeAmounts(t *testing.T) {
	app, out, _ := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"2", "alice", "pass123", "1111",
		"2", "abc", // unparsable deposit amount
		"2", "-5", // negative deposit amount
		"3", "0", // zero withdrawal amount
		"1",      // balance untouched
		"6", "3", // logout, exit
	))
	app.Run()
	wantOutput(t, out, "Invalid amount!", "Balance: 0.00")
	if strings.Count(out.String(), "Invalid amount!") != 3 {
		t.Fatalf("want 3 rejections:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Deposit successful!") || strings.Contains(out.String(), "Withdrawal successful!") {
		t.Fatalf("rejected amount reached the ledger:\n%s", out.String())
	}
}

func TestAdminAuditView(t *testing.T) {
	app, out, conn := newTestApp(t, script(
		"1", "alice", "pass123", "1111",
		"2", "alice", "pass123", "1111",
		"2", "75", // deposit so the audit has a row
		"6",
		"2", "admin", "s3cret", "9999", // admin login
		"1", // view all transactions
		"2", // view users
		"3", // logout
		"3", // exit
	))
	if err := db.SeedAdmin(conn, "admin", "s3cret", "9999"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	app.Run()
	wantOutput(t, out,
		"Admin Access Granted",
		"Deposit 75.00",
		"alice",
		"role=admin",
	)
}
