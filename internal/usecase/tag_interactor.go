package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
)

type tagUseCase struct {
	tags   ports.TagStorage
	logger *slog.Logger
}

// NewTagUseCase создает новый экземпляр TagUseCase
func NewTagUseCase(tags ports.TagStorage, logger *slog.Logger) TagUseCase {
	return &tagUseCase{tags: tags, logger: logger}
}

func (uc *tagUseCase) List(ctx context.Context, page int) (*domain.Page[domain.Tag], error) {
	return uc.tags.FindAllPaginated(ctx, page)
}

func (uc *tagUseCase) All(ctx context.Context) ([]domain.Tag, error) {
	return uc.tags.FindAll(ctx)
}

func (uc *tagUseCase) Add(ctx context.Context, viewer domain.Viewer, name string) (*domain.Tag, error) {
	if !viewer.IsLogged() {
		return nil, domain.ErrUnauthorized
	}

	name = cleanText(name)
	if err := checkLength("name", name, MinTagLen, MaxTagLen); err != nil {
		return nil, err
	}

	existing, err := uc.tags.FindForUniqueness(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("тег %q: %w", name, domain.ErrConflict)
	}

	tag := &domain.Tag{Name: name}
	if _, err := uc.tags.Create(ctx, tag); err != nil {
		return nil, err
	}
	uc.logger.Info("tag added", "id", tag.ID, "name", tag.Name, "by", viewer.UserID)
	return tag, nil
}

func (uc *tagUseCase) Delete(ctx context.Context, viewer domain.Viewer, id int64) error {
	if !viewer.IsLogged() {
		return domain.ErrUnauthorized
	}
	if !viewer.IsAdmin() {
		return domain.ErrForbidden
	}

	tag, err := uc.tags.FindOneByID(ctx, id)
	if err != nil {
		return err
	}
	if tag == nil {
		return fmt.Errorf("тег %d: %w", id, domain.ErrNotFound)
	}

	_, err = uc.tags.Delete(ctx, id)
	return err
}
