package db

import (
	"fmt"
	"testing"

	"atm_system/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ---- helpers ----

func newTestStore(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// ---- tests ----

func TestSeedAdminCreatesAccount(t *testing.T) {
	conn := newTestStore(t)
	if err := SeedAdmin(conn, "admin", "s3cret", "9999"); err != nil {
		t.Fatalf("SeedAdmin err=%v", err)
	}
	var admin domain.User
	if err := conn.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatal("seeded account is not an admin")
	}
	// Secrets are stored hashed
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")); err != nil {
		t.Fatalf("password hash mismatch: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Pin), []byte("9999")); err != nil {
		t.Fatalf("pin hash mismatch: %v", err)
	}
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	conn := newTestStore(t)
	if err := SeedAdmin(conn, "admin", "s3cret", "9999"); err != nil {
		t.Fatalf("first seed err=%v", err)
	}
	if err := SeedAdmin(conn, "admin", "changed", "0000"); err != nil {
		t.Fatalf("second seed err=%v", err)
	}
	var n int64
	if err := conn.Model(&domain.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 1 {
		t.Fatalf("users=%d, want 1", n)
	}
	// The original credentials survive a reseed
	var admin domain.User
	if err := conn.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("read admin: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret")); err != nil {
		t.Fatal("reseed overwrote the admin password")
	}
}

func TestSeedAdminSkipsIncompleteConfig(t *testing.T) {
	conn := newTestStore(t)
	if err := SeedAdmin(conn, "admin", "", ""); err != nil {
		t.Fatalf("SeedAdmin err=%v", err)
	}
	var n int64
	if err := conn.Model(&domain.User{}).Count(&n).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Fatalf("users=%d, want 0", n)
	}
}
