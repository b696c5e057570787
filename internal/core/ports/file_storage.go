package ports

import (
	"context"
	"io"
)

// FileStorage хранит загруженные файлы фотографий
type FileStorage interface {
	UploadFile(ctx context.Context, objectKey string, content io.Reader, size int64, contentType string) error
	GetFile(ctx context.Context, objectKey string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, objectKey string) error
}
