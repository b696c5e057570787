package ports

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/messaging/payloads"
)

// PhotoCleanupPublisher публикует задачи на удаление файлов удаленных фото.
// Используется usecase после каскадного удаления.
type PhotoCleanupPublisher interface {
	PublishPhotoCleanup(ctx context.Context, payload payloads.PhotoCleanupPayload) error
}

// PhotoCleanupConsumer получает задачи на удаление файлов, используется воркером
type PhotoCleanupConsumer interface {
	// StartConsumingPhotoCleanup начинает прослушивание очереди;
	// handler вызывается для каждого сообщения
	StartConsumingPhotoCleanup(ctx context.Context, handler func(context.Context, payloads.PhotoCleanupPayload) error) error
}
