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
	commentSelect = `SELECT c.id, c.text, c.publication_date, c.user_id, c.photo_id, u.login
	FROM comments c
	INNER JOIN users u ON c.user_id = u.id`
	commentOrder = ` ORDER BY c.publication_date DESC, c.id DESC`
)

type CommentStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewCommentStorage(db *sqlx.DB, logger *slog.Logger) *CommentStorage {
	return &CommentStorage{db: db, logger: logger, now: time.Now}
}

func (s *CommentStorage) FindOneByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := sqlx.GetContext(ctx, s.db, &comment, s.db.Rebind(commentSelect+` WHERE c.id = ?`), id)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		s.logger.Error("failed to get comment", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка при получении комментария: %w", err)
	}
	return &comment, nil
}

// FindAllOfPhoto получает все комментарии к фото, новые первыми
func (s *CommentStorage) FindAllOfPhoto(ctx context.Context, photoID int64) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	q := s.db.Rebind(commentSelect + ` WHERE c.photo_id = ?` + commentOrder)
	if err := sqlx.SelectContext(ctx, s.db, &comments, q, photoID); err != nil {
		s.logger.Error("failed to list comments", "photo_id", photoID, "error", err)
		return nil, fmt.Errorf("ошибка при получении комментариев: %w", err)
	}
	return comments, nil
}

// FindAllOfPhotoPaginated получает страницу комментариев к фото
func (s *CommentStorage) FindAllOfPhotoPaginated(ctx context.Context, photoID int64, page int) (*domain.Page[domain.Comment], error) {
	result, err := paginator.Paginate[domain.Comment](ctx, s.db, paginator.Query{
		Select: commentSelect + ` WHERE c.photo_id = ?` + commentOrder,
		Count:  `SELECT COUNT(*) FROM comments c WHERE c.photo_id = ?`,
		Args:   []any{photoID},
	}, page, domain.CommentPageSize)
	if err != nil {
		s.logger.Error("failed to paginate comments", "photo_id", photoID, "page", page, "error", err)
		return nil, fmt.Errorf("ошибка при получении страницы комментариев: %w", err)
	}
	return result, nil
}

// Create сохраняет комментарий, дата публикации ставится на сервере
func (s *CommentStorage) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	published := s.now().UTC()
	id, err := insertReturningID(ctx, s.db,
		`INSERT INTO comments (text, publication_date, user_id, photo_id) VALUES (?, ?, ?, ?) RETURNING id`,
		comment.Text, published, comment.UserID, comment.PhotoID,
	)
	if err != nil {
		s.logger.Error("failed to create comment", "photo_id", comment.PhotoID, "error", err)
		return 0, fmt.Errorf("ошибка при сохранении комментария: %w", err)
	}
	comment.ID = id
	comment.PublicationDate = published
	s.logger.Info("comment created", "id", id, "photo_id", comment.PhotoID, "user_id", comment.UserID)
	return id, nil
}

// Update меняет только текст комментария
func (s *CommentStorage) Update(ctx context.Context, comment *domain.Comment) (int64, error) {
	if !validID(comment.ID) {
		return 0, domain.ErrInvalidArgument
	}
	n, err := exec(ctx, s.db, `UPDATE comments SET text = ? WHERE id = ?`, comment.Text, comment.ID)
	if err != nil {
		s.logger.Error("failed to update comment", "id", comment.ID, "error", err)
		return 0, fmt.Errorf("ошибка при обновлении комментария: %w", err)
	}
	return n, nil
}

func (s *CommentStorage) Save(ctx context.Context, m domain.Mutation[domain.Comment]) (domain.SaveResult, error) {
	comment := m.Record
	if id, ok := m.ID(); ok {
		comment.ID = id
		n, err := s.Update(ctx, &comment)
		return domain.SaveResult{ID: id, RowsAffected: n}, err
	}
	id, err := s.Create(ctx, &comment)
	if err != nil {
		return domain.SaveResult{}, err
	}
	return domain.SaveResult{ID: id, RowsAffected: 1, Created: true}, nil
}

func (s *CommentStorage) Delete(ctx context.Context, id int64) (int64, error) {
	if !validID(id) {
		return 0, domain.ErrInvalidArgument
	}
	n, err := exec(ctx, s.db, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		s.logger.Error("failed to delete comment", "id", id, "error", err)
		return 0, fmt.Errorf("ошибка при удалении комментария: %w", err)
	}
	s.logger.Info("comment deleted", "id", id, "rows", n)
	return n, nil
}
