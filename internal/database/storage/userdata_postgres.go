package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

const userdataSelect = `SELECT d.id, d.user_id, d.name, d.surname FROM userdata d`

type UserdataStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewUserdataStorage(db *sqlx.DB, logger *slog.Logger) *UserdataStorage {
	return &UserdataStorage{db: db, logger: logger}
}

// FindOneByID получает userdata по ее ID
func (s *UserdataStorage) FindOneByID(ctx context.Context, id int64) (*domain.Userdata, error) {
	return s.findOne(ctx, ` WHERE d.id = ?`, id)
}

// FindOneByUserID получает userdata пользователя
func (s *UserdataStorage) FindOneByUserID(ctx context.Context, userID int64) (*domain.Userdata, error) {
	return s.findOne(ctx, ` WHERE d.user_id = ?`, userID)
}

func (s *UserdataStorage) findOne(ctx context.Context, where string, id int64) (*domain.Userdata, error) {
	var data domain.Userdata
	if err := sqlx.GetContext(ctx, s.db, &data, s.db.Rebind(userdataSelect+where), id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		s.logger.Error("failed to get userdata", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении userdata: %w", err)
	}
	return &data, nil
}

// FindAll получает userdata всех пользователей
func (s *UserdataStorage) FindAll(ctx context.Context) ([]domain.Userdata, error) {
	all := []domain.Userdata{}
	if err := sqlx.SelectContext(ctx, s.db, &all, s.db.Rebind(userdataSelect+` ORDER BY d.user_id`)); err != nil {
		s.logger.Error("failed to list userdata", "error", err)
		return nil, fmt.Errorf("ошибка при получении userdata: %w", err)
	}
	return all, nil
}

// Update меняет имя и фамилию по user_id; без user_id возвращает domain.ErrInvalidArgument
func (s *UserdataStorage) Update(ctx context.Context, data *domain.Userdata) (int64, error) {
	if !validID(data.UserID) {
		return 0, domain.ErrInvalidArgument
	}
	n, err := exec(ctx, s.db,
		`UPDATE userdata SET name = ?, surname = ? WHERE user_id = ?`,
		data.Name, data.Surname, data.UserID,
	)
	if err != nil {
		s.logger.Error("failed to update userdata", "user_id", data.UserID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении userdata: %w", err)
	}
	s.logger.Info("userdata updated", "user_id", data.UserID, "rows", n)
	return n, nil
}

// Delete удаляет userdata по ее ID
func (s *UserdataStorage) Delete(ctx context.Context, id int64) (int64, error) {
	if !validID(id) {
		return 0, domain.ErrInvalidArgument
	}
	n, err := exec(ctx, s.db, `DELETE FROM userdata WHERE id = ?`, id)
	if err != nil {
		s.logger.Error("failed to delete userdata", "id", id, "error", err)
		return 0, fmt.Errorf("ошибка при удалении userdata: %w", err)
	}
	return n, nil
}
