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
	photoSelect = `SELECT p.id, p.title, p.source, p.user_id, u.login, p.publication_date
	FROM photos p
	INNER JOIN users u ON p.user_id = u.id`
	photoCount = `SELECT COUNT(DISTINCT p.id)
	FROM photos p
	INNER JOIN users u ON p.user_id = u.id`
	photoOrder = ` ORDER BY p.publication_date DESC, p.id DESC`
)

type PhotoStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewPhotoStorage(db *sqlx.DB, logger *slog.Logger) *PhotoStorage {
	return &PhotoStorage{db: db, logger: logger, now: time.Now}
}

// FindAll получает все фото, новые первыми
func (s *PhotoStorage) FindAll(ctx context.Context) ([]domain.Photo, error) {
	photos := []domain.Photo{}
	if err := sqlx.SelectContext(ctx, s.db, &photos, s.db.Rebind(photoSelect+photoOrder)); err != nil {
		s.logger.Error("failed to list photos", "error", err)
		return nil, fmt.Errorf("ошибка при получении всех фото: %w", err)
	}
	return photos, nil
}

// FindAllPaginated получает страницу всех фото
func (s *PhotoStorage) FindAllPaginated(ctx context.Context, page int) (*domain.Page[domain.Photo], error) {
	start := time.Now()

	result, err := paginator.Paginate[domain.Photo](ctx, s.db, paginator.Query{
		Select: photoSelect + photoOrder,
		Count:  photoCount,
	}, page, domain.PhotoPageSize)
	if err != nil {
		s.logger.Error("failed to paginate photos", "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы фото: %w", err)
	}

	s.logger.Debug("listed photos page",
		"page", result.CurrentPage,
		"count", len(result.Items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// FindOneByID получает фото вместе с id связанных тегов.
// Если фото нет, возвращает nil, nil.
func (s *PhotoStorage) FindOneByID(ctx context.Context, id int64) (*domain.Photo, error) {
	start := time.Now()

	var photo domain.Photo
	err := sqlx.GetContext(ctx, s.db, &photo, s.db.Rebind(photoSelect+` WHERE p.id = ?`), id)
	if err != nil {
		if isNoRows(err) {
			s.logger.Warn("photo not found by id", "id", id)
			return nil, nil
		}
		s.logger.Error("failed to get photo by id", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении фото по ID: %w", err)
	}

	tagIDs := []int64{}
	err = sqlx.SelectContext(ctx, s.db, &tagIDs, s.db.Rebind(`SELECT tag_id FROM photo_tags WHERE photo_id = ? ORDER BY tag_id`), id)
	if err != nil {
		s.logger.Error("failed to get linked tags", "photo_id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении тегов фото: %w", err)
	}
	photo.TagIDs = tagIDs

	s.logger.Debug("photo retrieved by id",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &photo, nil
}

// FindAllByUser получает все фото пользователя
func (s *PhotoStorage) FindAllByUser(ctx context.Context, userID int64) ([]domain.Photo, error) {
	photos := []domain.Photo{}
	q := s.db.Rebind(photoSelect + ` WHERE p.user_id = ?` + photoOrder)
	if err := sqlx.SelectContext(ctx, s.db, &photos, q, userID); err != nil {
		s.logger.Error("failed to list user photos", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении фото пользователя: %w", err)
	}
	return photos, nil
}

// FindIDsByUser получает id всех фото пользователя
func (s *PhotoStorage) FindIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := []int64{}
	q := s.db.Rebind(`SELECT p.id FROM photos p WHERE p.user_id = ?` + photoOrder)
	if err := sqlx.SelectContext(ctx, s.db, &ids, q, userID); err != nil {
		s.logger.Error("failed to list user photo ids", "user_id", userID, "error", err)
		return nil, fmt.Errorf("ошибка при получении id фото пользователя: %w", err)
	}
	return ids, nil
}

// FindAllByUserPaginated получает страницу фото пользователя
func (s *PhotoStorage) FindAllByUserPaginated(ctx context.Context, userID int64, page int) (*domain.Page[domain.Photo], error) {
	result, err := paginator.Paginate[domain.Photo](ctx, s.db, paginator.Query{
		Select: photoSelect + ` WHERE p.user_id = ?` + photoOrder,
		Count:  photoCount + ` WHERE p.user_id = ?`,
		Args:   []any{userID},
	}, page, domain.PhotoPageSize)
	if err != nil {
		s.logger.Error("failed to paginate user photos", "user_id", userID, "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы фото пользователя: %w", err)
	}
	return result, nil
}

// FindAllWithTagPaginated получает страницу фото с тегом tagID
func (s *PhotoStorage) FindAllWithTagPaginated(ctx context.Context, tagID int64, page int) (*domain.Page[domain.Photo], error) {
	const tagJoin = ` INNER JOIN photo_tags pt ON p.id = pt.photo_id WHERE pt.tag_id = ?`

	result, err := paginator.Paginate[domain.Photo](ctx, s.db, paginator.Query{
		Select: photoSelect + tagJoin + photoOrder,
		Count:  photoCount + tagJoin,
		Args:   []any{tagID},
	}, page, domain.PhotoPageSize)
	if err != nil {
		s.logger.Error("failed to paginate photos by tag", "tag_id", tagID, "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении фото по тегу: %w", err)
	}
	return result, nil
}

// FindLinkedTags получает теги фото (id и имя)
func (s *PhotoStorage) FindLinkedTags(ctx context.Context, photoID int64) ([]domain.Tag, error) {
	tags := []domain.Tag{}
	q := s.db.Rebind(`SELECT t.id, t.name FROM tags t
	INNER JOIN photo_tags pt ON t.id = pt.tag_id
	WHERE pt.photo_id = ?
	ORDER BY t.name`)
	if err := sqlx.SelectContext(ctx, s.db, &tags, q, photoID); err != nil {
		s.logger.Error("failed to get linked tag names", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("ошибка при получении тегов фото: %w", err)
	}
	return tags, nil
}

// RemoveLinkedTags удаляет все связи фото с тегами
func (s *PhotoStorage) RemoveLinkedTags(ctx context.Context, photoID int64) (int64, error) {
	n, err := exec(ctx, s.db, `DELETE FROM photo_tags WHERE photo_id = ?`, photoID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при удалении связей с тегами: %w", err)
	}
	return n, nil
}

// Create сохраняет новое фото и его теги в одной транзакции.
// Дата публикации ставится на сервере, ID и дата записываются в photo.
func (s *PhotoStorage) Create(ctx context.Context, photo *domain.Photo) (int64, error) {
	start := time.Now()
	published := s.now().UTC()

	var id int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		id, err = insertReturningID(ctx, tx,
			`INSERT INTO photos (title, source, user_id, publication_date) VALUES (?, ?, ?, ?) RETURNING id`,
			photo.Title, photo.Source, photo.UserID, published,
		)
		if err != nil {
			return err
		}
		return addLinkedTags(ctx, tx, id, photo.TagIDs)
	})
	if err != nil {
		s.logger.Error("failed to create photo", "title", photo.Title, "user_id", photo.UserID, "error", err)
		return 0, fmt.Errorf("ошибка при сохранении фото: %w", err)
	}

	photo.ID = id
	photo.PublicationDate = published

	s.logger.Info("photo created",
		"id", id,
		"user_id", photo.UserID,
		"tags", len(photo.TagIDs),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return id, nil
}

// Update меняет заголовок фото и заменяет его теги.
// Файл (source) меняется только если передан непустым.
func (s *PhotoStorage) Update(ctx context.Context, photo *domain.Photo) (int64, error) {
	if !validID(photo.ID) {
		return 0, domain.ErrInvalidArgument
	}
	start := time.Now()

	var n int64
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if _, err := exec(ctx, tx, `DELETE FROM photo_tags WHERE photo_id = ?`, photo.ID); err != nil {
			return err
		}
		if err := addLinkedTags(ctx, tx, photo.ID, photo.TagIDs); err != nil {
			return err
		}
		var err error
		n, err = exec(ctx, tx,
			`UPDATE photos SET title = ?, source = COALESCE(NULLIF(?, ''), source) WHERE id = ?`,
			photo.Title, photo.Source, photo.ID,
		)
		return err
	})
	if err != nil {
		s.logger.Error("failed to update photo", "id", photo.ID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении фото: %w", err)
	}

	s.logger.Info("photo updated",
		"id", photo.ID,
		"rows", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return n, nil
}

// Save вставляет или обновляет фото в зависимости от варианта m.
func (s *PhotoStorage) Save(ctx context.Context, m domain.Mutation[domain.Photo]) (domain.SaveResult, error) {
	photo := m.Record
	if id, ok := m.ID(); ok {
		photo.ID = id
		n, err := s.Update(ctx, &photo)
		return domain.SaveResult{ID: id, RowsAffected: n}, err
	}
	id, err := s.Create(ctx, &photo)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{ID: id, RowsAffected: 1, Created: true}, nil
}

// Delete удаляет фото вместе с оценками, комментариями и связями с тегами.
// Любая ошибка откатывает транзакцию целиком.
func (s *PhotoStorage) Delete(ctx context.Context, id int64) (domain.RemovedPhotos, error) {
	if !validID(id) {
		return domain.RemovedPhotos{}, domain.ErrInvalidArgument
	}
	start := time.Now()

	var removed domain.RemovedPhotos
	err := withTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		removed, err = deletePhotoCascade(ctx, tx, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to delete photo", "id", id, "error", err)
		return domain.RemovedPhotos{}, err
	}

	s.logger.Info("photo deleted",
		"id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return removed, nil
}

func addLinkedTags(ctx context.Context, tx sqlx.ExtContext, photoID int64, tagIDs []int64) error {
	seen := make(map[int64]struct{}, len(tagIDs))
	for _, tagID := range tagIDs {
		if _, ok := seen[tagID]; ok {
			continue
		}
		seen[tagID] = struct{}{}
		if _, err := exec(ctx, tx, `INSERT INTO photo_tags (photo_id, tag_id) VALUES (?, ?)`, photoID, tagID); err != nil {
			return err
		}
	}
	return nil
}
