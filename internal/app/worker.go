package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

// runWorker запускает потребителя очереди очистки файлов и ждет отмены ctx
func runWorker(
	ctx context.Context,
	cleanupUseCase *usecase.CleanupUseCase,
	consumer ports.PhotoCleanupConsumer,
	logger *slog.Logger,
) error {
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	if err := consumer.StartConsumingPhotoCleanup(workerCtx, cleanupUseCase.HandlePhotoCleanup); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}
	logger.Info("worker started, waiting for photo cleanup messages")

	<-ctx.Done()

	logger.Info("shutdown signal received, stopping worker")
	return nil
}
