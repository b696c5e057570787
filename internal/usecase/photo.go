package usecase

import (
	"context"
	"io"

	"github.com/GoArmGo/PhotoShare/internal/domain"
)

// PhotoView — все, что нужно для страницы одного фото
type PhotoView struct {
	Photo  domain.Photo    `json:"photo"`
	Tags   []domain.Tag    `json:"tags"`
	Author *domain.Profile `json:"author"`
	// AverageRating округлено до одного знака, nil если оценок нет
	AverageRating *float64                     `json:"average_rating"`
	UserHaveRated bool                         `json:"user_have_rated"`
	Comments      *domain.Page[domain.Comment] `json:"comments"`
}

// TagPhotos — страница фото с одним тегом
type TagPhotos struct {
	Tag    domain.Tag                 `json:"tag"`
	Photos *domain.Page[domain.Photo] `json:"photos"`
}

// RatingSummary — состояние оценок фото после голосования
type RatingSummary struct {
	AverageRating *float64 `json:"average_rating"`
	UserHaveRated bool     `json:"user_have_rated"`
}

// UploadInput — данные формы загрузки фото
type UploadInput struct {
	Title       string
	TagIDs      []int64
	File        io.Reader
	Size        int64
	ContentType string
}

// EditInput — данные формы редактирования; файл фото не меняется
type EditInput struct {
	Title  string  `json:"title"`
	TagIDs []int64 `json:"tags"`
}

// PhotoUseCase определяет бизнес-логику работы с фото, оценками и комментариями
type PhotoUseCase interface {
	// List возвращает страницу всех фото, новые первыми
	List(ctx context.Context, page int) (*domain.Page[domain.Photo], error)

	// ListByTag возвращает страницу фото с тегом tagID
	ListByTag(ctx context.Context, tagID int64, page int) (*TagPhotos, error)

	// View собирает фото, его теги, автора, среднюю оценку и страницу комментариев
	View(ctx context.Context, viewer domain.Viewer, id int64, commentPage int) (*PhotoView, error)

	// Source открывает файл фото; вызывающий закрывает ридер
	Source(ctx context.Context, id int64) (io.ReadCloser, error)

	// Upload сохраняет файл в хранилище и создает запись фото
	Upload(ctx context.Context, viewer domain.Viewer, in UploadInput) (*domain.Photo, error)

	// Edit меняет заголовок и теги, доступно автору и администратору
	Edit(ctx context.Context, viewer domain.Viewer, id int64, in EditInput) (*domain.Photo, error)

	// Delete удаляет фото каскадом и ставит файл в очередь на удаление
	Delete(ctx context.Context, viewer domain.Viewer, id int64) error

	// Rate ставит оценку; повторная оценка дает domain.ErrAlreadyRated
	Rate(ctx context.Context, viewer domain.Viewer, photoID int64, value int) (*RatingSummary, error)

	// Comment добавляет комментарий к фото
	Comment(ctx context.Context, viewer domain.Viewer, photoID int64, text string) (*domain.Comment, error)

	// DeleteComment удаляет комментарий, доступно автору и администратору
	DeleteComment(ctx context.Context, viewer domain.Viewer, commentID int64) error
}
