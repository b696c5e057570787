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
	tagSelect = `SELECT t.id, t.name FROM tags t`
	tagOrder  = ` ORDER BY t.name, t.id`
)

type TagStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewTagStorage(db *sqlx.DB, logger *slog.Logger) *TagStorage {
	return &TagStorage{db: db, logger: logger}
}

// FindAll получает все теги по алфавиту
func (s *TagStorage) FindAll(ctx context.Context) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	if err := sqlx.SelectContext(ctx, s.db, &tags, s.db.Rebind(tagSelect+tagOrder)); err != nil {
		s.logger.Error("failed to list tags", "error", err)
		return nil, fmt.Errorf("ошибка при получении тегов: %w", err)
	}
	return tags, nil
}

// FindAllPaginated получает страницу тегов
func (s *TagStorage) FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Tag], error) {
	result, err := paginator.Paginate[domain.Tag](ctx, s.db, paginator.Query{
		Select: tagSelect + tagOrder,
		Count:  `SELECT COUNT(*) FROM tags t`,
	}, page, domain.TagPageSize)
	if err != nil {
		s.logger.Error("failed to paginate tags", "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы тегов: %w", err)
	}
	return result, nil
}

func (s *TagStorage) FindOneByID(ctx context.Context, id int64) (*domain.Tag, error) {
	return s.findOne(ctx, ` WHERE t.id = ?`, id)
}

// FindForUniqueness ищет другой тег с тем же именем, excludeID исключает редактируемый
func (s *TagStorage) FindForUniqueness(ctx context.Context, name string, excludeID int64) (*domain.Tag, error) {
	return s.findOne(ctx, ` WHERE t.name = ? AND t.id <> ?`, name, excludeID)
}

// FindIDByName возвращает id тега по имени; ok=false если такого тега нет
func (s *TagStorage) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	tag, err := s.findOne(ctx, ` WHERE t.name = ?`, name)
	if err != nil || tag == nil {
		return 0, false, err
	}
	return tag.ID, true, nil
}

func (s *TagStorage) findOne(ctx context.Context, where string, args ...any) (*domain.Tag, error) {
	var tag domain.Tag
	if err := sqlx.GetContext(ctx, s.db, &tag, s.db.Rebind(tagSelect+where), args...); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		s.logger.Error("failed to get tag", "args", args, "error", err)
		return nil, fmt.Errorf("ошибка при получении тега: %w", err)
	}
	return &tag, nil
}

// Create сохраняет новый тег; повтор имени дает domain.ErrConflict
func (s *TagStorage) Create(ctx context.Context, tag *domain.Tag) (int64, error) {
	id, err := insertReturningID(ctx, s.db, `INSERT INTO tags (name) VALUES (?) RETURNING id`, tag.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		s.logger.Error("failed to create tag", "name", tag.Name, "error", err)
		return 0, fmt.Errorf("ошибка при создании тега: %w", err)
	}
	tag.ID = id
	s.logger.Info("tag created", "id", id, "name", tag.Name)
	return id, nil
}

func (s *TagStorage) Update(ctx context.Context, tag *domain.Tag) (int64, error) {
	if !validID(tag.ID) {
		return 0, domain.ErrInvalidArgument
	}
	n, err := exec(ctx, s.db, `UPDATE tags SET name = ? WHERE id = ?`, tag.Name, tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrConflict
		}
		s.logger.Error("failed to update tag", "id", tag.ID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении тега: %w", err)
	}
	return n, nil
}

func (s *TagStorage) Save(ctx context.Context, m domain.Mutation[domain.Tag]) (domain.SaveResult, error) {
	tag := m.Record
	if id, ok := m.ID(); ok {
		tag.ID = id
		n, err := s.Update(ctx, &tag)
		return domain.SaveResult{ID: id, RowsAffected: n}, err
	}
	id, err := s.Create(ctx, &tag)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{ID: id, RowsAffected: 1, Created: true}, nil
}

// Delete удаляет связи тега с фото и сам тег в одной транзакции
func (s *TagStorage) Delete(ctx context.Context, id int64) (int64, error) {
	if !validID(id) {
		return 0, domain.ErrInvalidArgument
	}
	start := time.Now()

	var n int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := exec(ctx, tx, `DELETE FROM photo_tags WHERE tag_id = ?`, id); err != nil {
			return err
		}
		var err error
		n, err = exec(ctx, tx, `DELETE FROM tags WHERE id = ?`, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to delete tag", "id", id, "error", err)
		return 0, err
	}

	s.logger.Info("tag deleted",
		"id", id,
		"rows", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n, nil
}
