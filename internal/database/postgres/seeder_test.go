package postgres

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/GoArmGo/PhotoShare/internal/database/dbtest"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type prefixHasher struct{}

func (prefixHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (prefixHasher) Compare(string, string) error { return nil }

func setupSeeder(t *testing.T) (*Seeder, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed opening in-memory sqlite database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed getting sql.DB from gorm: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.Exec(dbtest.Schema).Error; err != nil {
		t.Fatalf("failed applying schema: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSeeder(db, prefixHasher{}, logger), db
}

func TestEnsureRoles(t *testing.T) {
	s, db := setupSeeder(t)
	ctx := context.Background()

	if err := db.Exec("DELETE FROM roles").Error; err != nil {
		t.Fatalf("clear roles: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.EnsureRoles(ctx); err != nil {
			t.Fatalf("ensure roles (run %d): %v", i+1, err)
		}
	}

	var roles []domain.Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		t.Fatalf("load roles: %v", err)
	}
	if len(roles) != 2 || roles[0].Name != domain.RoleAdmin || roles[1].Name != domain.RoleUser {
		t.Fatalf("unexpected roles %+v", roles)
	}
}

func TestEnsureAdmin(t *testing.T) {
	s, db := setupSeeder(t)
	ctx := context.Background()

	if err := s.EnsureAdmin(ctx, "admin", "", "admin@example.com"); err != nil {
		t.Fatalf("ensure admin without password: %v", err)
	}
	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users without admin password, got %d", count)
	}

	for i := 0; i < 2; i++ {
		if err := s.EnsureAdmin(ctx, "admin", "secret-pass", "admin@example.com"); err != nil {
			t.Fatalf("ensure admin (run %d): %v", i+1, err)
		}
	}

	var users []domain.User
	if err := db.Find(&users).Error; err != nil {
		t.Fatalf("load users: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected one admin, got %d", len(users))
	}
	admin := users[0]
	if admin.RoleID != RoleAdminID || admin.Password != "hashed:secret-pass" {
		t.Errorf("unexpected admin %+v", admin)
	}

	var userdata int64
	db.Model(&domain.Userdata{}).Where("user_id = ?", admin.ID).Count(&userdata)
	if userdata != 1 {
		t.Errorf("expected admin userdata, got %d", userdata)
	}
}
