package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/domain"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
	"github.com/google/uuid"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// photoUseCase implements PhotoUseCase
type photoUseCase struct {
	photos    ports.PhotoStorage
	tags      ports.TagStorage
	ratings   ports.RatingStorage
	comments  ports.CommentStorage
	profiles  ports.ProfileStorage
	files     ports.FileStorage
	publisher ports.PhotoCleanupPublisher
	logger    *slog.Logger

	newObjectKey func(contentType string) string
}

// NewPhotoUseCase создает новый экземпляр PhotoUseCase
func NewPhotoUseCase(
	photos ports.PhotoStorage,
	tags ports.TagStorage,
	ratings ports.RatingStorage,
	comments ports.CommentStorage,
	profiles ports.ProfileStorage,
	files ports.FileStorage,
	publisher ports.PhotoCleanupPublisher,
	logger *slog.Logger,
) PhotoUseCase {
	return &photoUseCase{
		photos:       photos,
		tags:         tags,
		ratings:      ratings,
		comments:     comments,
		profiles:     profiles,
		files:        files,
		publisher:    publisher,
		logger:       logger,
		newObjectKey: objectKey,
	}
}

// objectKey генерирует уникальный ключ файла в хранилище
func objectKey(contentType string) string {
	return "photos/" + uuid.NewString() + imageExtensions[contentType]
}

func (uc *photoUseCase) List(ctx context.Context, page int) (*domain.Page[domain.Photo], error) {
	return uc.photos.FindAllPaginated(ctx, page)
}

func (uc *photoUseCase) ListByTag(ctx context.Context, tagID int64, page int) (*TagPhotos, error) {
	tag, err := uc.tags.FindOneByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("тег %d: %w", tagID, domain.ErrNotFound)
	}

	photos, err := uc.photos.FindAllWithTagPaginated(ctx, tagID, page)
	if err != nil {
		return nil, err
	}
	return &TagPhotos{Tag: *tag, Photos: photos}, nil
}

func (uc *photoUseCase) View(ctx context.Context, viewer domain.Viewer, id int64, commentPage int) (*PhotoView, error) {
	photo, err := uc.findPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := uc.photos.FindLinkedTags(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := uc.profiles.FindOneByID(ctx, photo.UserID)
	if err != nil {
		return nil, err
	}
	summary, err := uc.ratingSummary(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	comments, err := uc.comments.FindAllOfPhotoPaginated(ctx, id, commentPage)
	if err != nil {
		return nil, err
	}

	return &PhotoView{
		Photo:         *photo,
		Tags:          tags,
		Author:        author,
		AverageRating: summary.AverageRating,
		UserHaveRated: summary.UserHaveRated,
		Comments:      comments,
	}, nil
}

func (uc *photoUseCase) Source(ctx context.Context, id int64) (io.ReadCloser, error) {
	photo, err := uc.findPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.files.GetFile(ctx, photo.Source)
}

func (uc *photoUseCase) Upload(ctx context.Context, viewer domain.Viewer, in UploadInput) (*domain.Photo, error) {
	if !viewer.IsLogged() {
		return nil, domain.ErrUnauthorized
	}

	title := cleanText(in.Title)
	if err := checkLength("title", title, MinTitleLen, MaxTitleLen); err != nil {
		return nil, err
	}
	if in.File == nil || in.Size <= 0 {
		return nil, invalid("source", "file is required")
	}
	if in.Size > MaxPhotoSize {
		return nil, invalid("source", "file must not exceed %d bytes", MaxPhotoSize)
	}
	if !AllowedImageTypes[in.ContentType] {
		return nil, invalid("source", "unsupported file type %q", in.ContentType)
	}
	if err := uc.checkTags(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	key := uc.newObjectKey(in.ContentType)
	if err := uc.files.UploadFile(ctx, key, in.File, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("usecase: ошибка загрузки файла: %w", err)
	}

	photo := &domain.Photo{
		Title:  title,
		Source: key,
		UserID: viewer.UserID,
		TagIDs: in.TagIDs,
	}
	if _, err := uc.photos.Create(ctx, photo); err != nil {
		if delErr := uc.files.DeleteFile(ctx, key); delErr != nil {
			uc.logger.Error("failed to remove orphaned file", "key", key, "error", delErr)
		}
		return nil, err
	}

	uc.logger.Info("photo uploaded", "id", photo.ID, "user_id", viewer.UserID, "key", key)
	return photo, nil
}

func (uc *photoUseCase) Edit(ctx context.Context, viewer domain.Viewer, id int64, in EditInput) (*domain.Photo, error) {
	photo, err := uc.findPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(viewer, photo.UserID); err != nil {
		return nil, err
	}

	title := cleanText(in.Title)
	if err := checkLength("title", title, MinTitleLen, MaxTitleLen); err != nil {
		return nil, err
	}
	if err := uc.checkTags(ctx, in.TagIDs); err != nil {
		return nil, err
	}

	photo.Title = title
	photo.TagIDs = in.TagIDs
	photo.Source = ""
	if _, err := uc.photos.Update(ctx, photo); err != nil {
		return nil, err
	}
	return uc.findPhoto(ctx, id)
}

func (uc *photoUseCase) Delete(ctx context.Context, viewer domain.Viewer, id int64) error {
	photo, err := uc.findPhoto(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(viewer, photo.UserID); err != nil {
		return err
	}

	removed, err := uc.photos.Delete(ctx, id)
	if err != nil {
		return err
	}
	enqueueCleanup(ctx, uc.publisher, uc.logger, removed)
	return nil
}

func (uc *photoUseCase) Rate(ctx context.Context, viewer domain.Viewer, photoID int64, value int) (*RatingSummary, error) {
	if !viewer.IsLogged() {
		return nil, domain.ErrUnauthorized
	}
	if value < domain.MinRating || value > domain.MaxRating {
		return nil, invalid("value", "must be between %d and %d", domain.MinRating, domain.MaxRating)
	}
	if _, err := uc.findPhoto(ctx, photoID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{Value: value, PhotoID: photoID, UserID: viewer.UserID}
	if _, err := uc.ratings.Create(ctx, rating); err != nil {
		return nil, err
	}
	return uc.ratingSummary(ctx, viewer, photoID)
}

func (uc *photoUseCase) Comment(ctx context.Context, viewer domain.Viewer, photoID int64, text string) (*domain.Comment, error) {
	if !viewer.IsLogged() {
		return nil, domain.ErrUnauthorized
	}
	text = cleanText(text)
	if err := checkLength("text", text, 1, MaxCommentLen); err != nil {
		return nil, err
	}
	if _, err := uc.findPhoto(ctx, photoID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{Text: text, UserID: viewer.UserID, PhotoID: photoID}
	if _, err := uc.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (uc *photoUseCase) DeleteComment(ctx context.Context, viewer domain.Viewer, commentID int64) error {
	comment, err := uc.comments.FindOneByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return fmt.Errorf("комментарий %d: %w", commentID, domain.ErrNotFound)
	}
	if err := authorize(viewer, comment.UserID); err != nil {
		return err
	}
	_, err = uc.comments.Delete(ctx, commentID)
	return err
}

func (uc *photoUseCase) findPhoto(ctx context.Context, id int64) (*domain.Photo, error) {
	photo, err := uc.photos.FindOneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, fmt.Errorf("фото %d: %w", id, domain.ErrNotFound)
	}
	return photo, nil
}

func (uc *photoUseCase) checkTags(ctx context.Context, tagIDs []int64) error {
	for _, id := range tagIDs {
		tag, err := uc.tags.FindOneByID(ctx, id)
		if err != nil {
			return err
		}
		if tag == nil {
			return invalid("tags", "unknown tag %d", id)
		}
	}
	return nil
}

func (uc *photoUseCase) ratingSummary(ctx context.Context, viewer domain.Viewer, photoID int64) (*RatingSummary, error) {
	avg, ok, err := uc.ratings.AverageForPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}

	summary := &RatingSummary{}
	if ok {
		rounded := RoundRating(avg)
		summary.AverageRating = &rounded
	}
	if viewer.IsLogged() {
		summary.UserHaveRated, err = uc.ratings.HasUserRated(ctx, photoID, viewer.UserID)
		if err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// RoundRating округляет среднюю оценку до одного знака после запятой
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}

// authorize пропускает владельца записи и администратора
func authorize(viewer domain.Viewer, ownerID int64) error {
	if !viewer.IsLogged() {
		return domain.ErrUnauthorized
	}
	if !viewer.CanManage(ownerID) {
		return domain.ErrForbidden
	}
	return nil
}

// enqueueCleanup ставит файлы удаленных фото в очередь на удаление.
// Строки уже удалены, поэтому ошибка публикации только логируется.
func enqueueCleanup(ctx context.Context, publisher ports.PhotoCleanupPublisher, logger *slog.Logger, removed domain.RemovedPhotos) {
	payload := payloads.PhotoCleanupPayload{PhotoIDs: removed.PhotoIDs, Sources: removed.Sources}
	if payload.Empty() {
		return
	}
	if err := publisher.PublishPhotoCleanup(ctx, payload); err != nil {
		logger.Error("failed to enqueue photo cleanup", "photos", removed.PhotoIDs, "error", err)
	}
}

// IsClientError сообщает, что ошибка вызвана запросом, а не сбоем сервера
func IsClientError(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound,
		domain.ErrValidation,
		domain.ErrInvalidArgument,
		domain.ErrForbidden,
		domain.ErrUnauthorized,
		domain.ErrAlreadyRated,
		domain.ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
