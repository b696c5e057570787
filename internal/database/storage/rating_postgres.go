package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/jmoiron/sqlx"
)

type RatingStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewRatingStorage(db *sqlx.DB, logger *slog.Logger) *RatingStorage {
	return &RatingStorage{db: db, logger: logger}
}

// FindAllOfPhoto получает все оценки фото
func (s *RatingStorage) FindAllOfPhoto(ctx context.Context, photoID int64) ([]domain.Rating, error) {
	ratings := []domain.Rating{}
	q := s.db.Rebind(`SELECT id, value, photo_id, user_id FROM ratings WHERE photo_id = ? ORDER BY id`)
	if err := sqlx.SelectContext(ctx, s.db, &ratings, q, photoID); err != nil {
		s.logger.Error("failed to list ratings", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("ошибка при получении оценок: %w", err)
	}
	return ratings, nil
}

// HasUserRated сообщает, оценивал ли пользователь фото
func (s *RatingStorage) HasUserRated(ctx context.Context, photoID, userID int64) (bool, error) {
	var n int
	q := s.db.Rebind(`SELECT COUNT(*) FROM ratings WHERE photo_id = ? AND user_id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &n, q, photoID, userID); err != nil {
		s.logger.Error("failed to check rating", "photo_id", photoID, "user_id", userID, "error", err)
		return false, fmt.Errorf("ошибка при проверке оценки: %w", err)
	}
	return n > 0, nil
}

// AverageForPhoto возвращает среднюю оценку без округления.
// ok=false, если оценок нет.
func (s *RatingStorage) AverageForPhoto(ctx context.Context, photoID int64) (float64, bool, error) {
	var avg sql.NullFloat64
	q := s.db.Rebind(`SELECT AVG(value) FROM ratings WHERE photo_id = ?`)
	if err := sqlx.GetContext(ctx, s.db, &avg, q, photoID); err != nil {
		s.logger.Error("failed to get average rating", "photo_id", photoID, "error", err)
		return 0, false, fmt.Errorf("ошибка при получении средней оценки: %w", err)
	}
	return avg.Float64, avg.Valid, nil
}

// Create сохраняет оценку. Повторная оценка того же фото тем же
// пользователем отклоняется ограничением UNIQUE и дает domain.ErrAlreadyRated.
func (s *RatingStorage) Create(ctx context.Context, rating *domain.Rating) (int64, error) {
	id, err := insertReturningID(ctx, s.db,
		`INSERT INTO ratings (value, photo_id, user_id) VALUES (?, ?, ?) RETURNING id`,
		rating.Value, rating.PhotoID, rating.UserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			s.logger.Warn("photo already rated", "photo_id", rating.PhotoID, "user_id", rating.UserID)
			return 0, domain.ErrAlreadyRated
		}
		s.logger.Error("failed to create rating", "photo_id", rating.PhotoID, "error", err)
		return 0, fmt.Errorf("ошибка при сохранении оценки: %w", err)
	}
	rating.ID = id
	s.logger.Info("rating created", "id", id, "photo_id", rating.PhotoID, "value", rating.Value)
	return id, nil
}

// Save вставляет новую оценку; оценки не редактируются,
// поэтому существующая запись не меняется и результат 0 строк.
func (s *RatingStorage) Save(ctx context.Context, m domain.Mutation[domain.Rating]) (domain.SaveResult, error) {
	if id, ok := m.ID(); ok {
		return domain.SaveResult{ID: id}, nil
	}
	rating := m.Record
	id, err := s.Create(ctx, &rating)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{ID: id, RowsAffected: 1, Created: true}, nil
}
