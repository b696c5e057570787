package di

import (
	"context"

	"github.com/GoArmGo/PhotoShare/internal/adapter/storage/minio"
	"github.com/GoArmGo/PhotoShare/internal/app"
	"github.com/GoArmGo/PhotoShare/internal/auth"
	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/database/client"
	"github.com/GoArmGo/PhotoShare/internal/database/postgres"
	"github.com/GoArmGo/PhotoShare/internal/database/storage"
	"github.com/GoArmGo/PhotoShare/internal/handler"
	"github.com/GoArmGo/PhotoShare/internal/logger"
	"github.com/GoArmGo/PhotoShare/internal/rabbitmq"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

// maxParallelUploads — сколько загрузок фото сервер обрабатывает одновременно
const maxParallelUploads = 5

// BuildApp инициализирует все зависимости для режима mode и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента и GORM поверх того же пула
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}
	gormDB, err := postgres.OpenGorm(dbClient.DB.DB, slogger)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	seeder := postgres.NewSeeder(gormDB, hasher, slogger)

	if mode == app.ModeMigrate {
		return app.NewApp(cfg, slogger, dbClient, seeder, nil, nil, nil, nil), nil
	}

	// 3. Объектное хранилище и очередь нужны серверу и воркеру
	fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg, slogger)
	if err != nil {
		_ = dbClient.Close()
		return nil, err
	}

	cleanupUseCase := usecase.NewCleanupUseCase(fileStorage, slogger)
	if mode == app.ModeWorker {
		return app.NewApp(cfg, slogger, dbClient, seeder, nil, cleanupUseCase, rabbitMQClient, rabbitMQClient.Close), nil
	}

	// 4. Инициализация хранилищ
	db := dbClient.DB
	photoStorage := storage.NewPhotoStorage(db, slogger)
	userStorage := storage.NewUserStorage(db, hasher, slogger)
	userdataStorage := storage.NewUserdataStorage(db, slogger)
	profileStorage := storage.NewProfileStorage(db, slogger)
	tagStorage := storage.NewTagStorage(db, slogger)
	ratingStorage := storage.NewRatingStorage(db, slogger)
	commentStorage := storage.NewCommentStorage(db, slogger)

	// 5. Инициализация бизнес-логики (usecases)
	photoUseCase := usecase.NewPhotoUseCase(
		photoStorage,
		tagStorage,
		ratingStorage,
		commentStorage,
		profileStorage,
		fileStorage,
		rabbitMQClient,
		slogger,
	)
	profileUseCase := usecase.NewProfileUseCase(profileStorage, userStorage, userdataStorage, photoStorage, rabbitMQClient, slogger)
	tagUseCase := usecase.NewTagUseCase(tagStorage, slogger)
	homeUseCase := usecase.NewHomeUseCase(userStorage, tagStorage, slogger)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authUseCase := usecase.NewAuthUseCase(userStorage, hasher, tokens, slogger)

	// 6. HTTP-обработчики с лимитером параллельных загрузок
	h := handler.NewHandler(
		photoUseCase,
		profileUseCase,
		tagUseCase,
		homeUseCase,
		authUseCase,
		make(chan struct{}, maxParallelUploads),
		slogger,
	)

	// 7. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, dbClient, seeder, h, cleanupUseCase, rabbitMQClient, rabbitMQClient.Close)

	slogger.Info("all dependencies initialized", "mode", mode)
	return application, nil
}
