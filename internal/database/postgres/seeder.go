package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"gorm.io/gorm"
)

// RoleAdminID — id роли администратора в таблице roles
const RoleAdminID int64 = 1

// Seeder заполняет справочники и создает администратора с помощью GORM
type Seeder struct {
	db     *gorm.DB
	hasher ports.PasswordHasher
	logger *slog.Logger
}

func NewSeeder(db *gorm.DB, hasher ports.PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, logger: logger}
}

// EnsureRoles создает недостающие роли ROLE_ADMIN и ROLE_USER
func (s *Seeder) EnsureRoles(ctx context.Context) error {
	roles := []domain.Role{
		{ID: RoleAdminID, Name: domain.RoleAdmin},
		{ID: domain.RoleUserID, Name: domain.RoleUser},
	}

	for _, r := range roles {
		var role domain.Role
		result := s.db.WithContext(ctx).
			Where(domain.Role{ID: r.ID}).
			Attrs(domain.Role{Name: r.Name}).
			FirstOrCreate(&role)
		if result.Error != nil {
			return fmt.Errorf("ошибка при создании роли %s с GORM: %w", r.Name, result.Error)
		}
		if result.RowsAffected > 0 {
			s.logger.Info("role created", "id", role.ID, "name", role.Name)
		}
	}
	return nil
}

// EnsureAdmin создает администратора login, если такого пользователя еще нет.
// Пустой пароль отключает создание.
func (s *Seeder) EnsureAdmin(ctx context.Context, login, password, mail string) error {
	if password == "" {
		s.logger.Warn("admin password is not set, skipping admin creation", "login", login)
		return nil
	}
	start := time.Now()

	var existing domain.User
	err := s.db.WithContext(ctx).Where("login = ?", login).First(&existing).Error
	if err == nil {
		s.logger.Info("admin user already exists", "id", existing.ID, "login", login)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("ошибка при поиске администратора с GORM: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля администратора: %w", err)
	}

	admin := domain.User{Login: login, Password: hash, Mail: mail, RoleID: RoleAdminID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Userdata{UserID: admin.ID}).Error
	})
	if err != nil {
		return fmt.Errorf("ошибка при создании администратора с GORM: %w", err)
	}

	s.logger.Info("admin user created",
		"id", admin.ID,
		"login", login,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
