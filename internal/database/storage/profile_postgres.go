package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PhotoShare/internal/database/paginator"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

const (
	profileSelect = `SELECT u.id, u.login, u.mail, COALESCE(d.name, '') AS name, COALESCE(d.surname, '') AS surname
	FROM users u
	LEFT JOIN userdata d ON d.user_id = u.id`
	profileOrder = ` ORDER BY u.login, u.id`
)

// ProfileStorage читает и меняет пользователя вместе с его userdata.
type ProfileStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewProfileStorage(db *sqlx.DB, logger *slog.Logger) *ProfileStorage {
	return &ProfileStorage{db: db, logger: logger}
}

func (s *ProfileStorage) FindOneByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var profile domain.Profile
	err := sqlx.GetContext(ctx, s.db, &profile, s.db.Rebind(profileSelect+` WHERE u.id = ?`), id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		s.logger.Error("failed to get profile", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении профиля: %w", err)
	}
	return &profile, nil
}

func (s *ProfileStorage) FindAll(ctx context.Context) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	if err := sqlx.SelectContext(ctx, s.db, &profiles, s.db.Rebind(profileSelect+profileOrder)); err != nil {
		s.logger.Error("failed to list profiles", "error", err)
		return nil, fmt.Errorf("ошибка при получении профилей: %w", err)
	}
	return profiles, nil
}

func (s *ProfileStorage) FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Profile], error) {
	result, err := paginator.Paginate[domain.Profile](ctx, s.db, paginator.Query{
		Select: profileSelect + profileOrder,
		Count:  `SELECT COUNT(*) FROM users u`,
	}, page, domain.ProfilePageSize)
	if err != nil {
		s.logger.Error("failed to paginate profiles", "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы профилей: %w", err)
	}
	return result, nil
}

// Update сохраняет почту пользователя и его имя с фамилией в одной транзакции
func (s *ProfileStorage) Update(ctx context.Context, profile *domain.Profile) (int64, error) {
	if !validID(profile.ID) {
		return 0, domain.ErrInvalidArgument
	}
	start := time.Now()

	var n int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		n, err = exec(ctx, tx, `UPDATE users SET mail = ? WHERE id = ?`, profile.Mail, profile.ID)
		if err != nil {
			return err
		}
		_, err = exec(ctx, tx,
			`UPDATE userdata SET name = ?, surname = ? WHERE user_id = ?`,
			profile.Name, profile.Surname, profile.ID,
		)
		return err
	})
	if err != nil {
		s.logger.Error("failed to update profile", "id", profile.ID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении профиля: %w", err)
	}

	s.logger.Info("profile updated",
		"id", profile.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n, nil
}
