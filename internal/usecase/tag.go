package usecase

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// TagUseCase определяет бизнес-логику работы с тегами
type TagUseCase interface {
	List(ctx context.Context, page int) (*domain.Page[domain.Tag], error)
	// All возвращает все теги, например для формы выбора
	All(ctx context.Context) ([]domain.Tag, error)
	Add(ctx context.Context, viewer domain.Viewer, name string) (*domain.Tag, error)
	// Delete удаляет тег и его связи с фото, доступно только администратору
	Delete(ctx context.Context, viewer domain.Viewer, id int64) error
}
