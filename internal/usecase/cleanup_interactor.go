package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
)

// CleanupUseCase удаляет из хранилища файлы удаленных фото
type CleanupUseCase struct {
	files  ports.FileStorage
	logger *slog.Logger
}

func NewCleanupUseCase(files ports.FileStorage, logger *slog.Logger) *CleanupUseCase {
	return &CleanupUseCase{files: files, logger: logger}
}

// HandlePhotoCleanup удаляет все файлы из payload. Ошибки собираются,
// чтобы сообщение вернулось в очередь; повторное удаление безопасно.
func (uc *CleanupUseCase) HandlePhotoCleanup(ctx context.Context, payload payloads.PhotoCleanupPayload) error {
	var errs []error
	for _, source := range payload.Sources {
		if source == "" {
			continue
		}
		if err := uc.files.DeleteFile(ctx, source); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", source, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	uc.logger.Info("photo files removed", "photos", payload.PhotoIDs, "files", len(payload.Sources))
	return nil
}
