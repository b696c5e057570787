package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PhotoShare/internal/config"
	"github.com/GoArmGo/PhotoShare/internal/core/ports"
	"github.com/GoArmGo/PhotoShare/internal/database/client"
	"github.com/GoArmGo/PhotoShare/internal/database/postgres"
	"github.com/GoArmGo/PhotoShare/internal/handler"
	"github.com/GoArmGo/PhotoShare/internal/usecase"
)

// Режимы запуска
const (
	ModeServer  = "server"
	ModeWorker  = "worker"
	ModeMigrate = "migrate"
)

type App struct {
	Config          *config.Config
	logger          *slog.Logger
	db              *client.Client
	seeder          *postgres.Seeder
	handler         *handler.Handler
	cleanupUseCase  *usecase.CleanupUseCase
	cleanupConsumer ports.PhotoCleanupConsumer
	closeQueue      func()
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	db *client.Client,
	seeder *postgres.Seeder,
	h *handler.Handler,
	cleanupUseCase *usecase.CleanupUseCase,
	cleanupConsumer ports.PhotoCleanupConsumer,
	closeQueue func()) *App {
	return &App{
		Config:          cfg,
		logger:          logger,
		db:              db,
		seeder:          seeder,
		handler:         h,
		cleanupUseCase:  cleanupUseCase,
		cleanupConsumer: cleanupConsumer,
		closeQueue:      closeQueue,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в режиме mode и блокируется до сигнала завершения
func (a *App) Run(ctx context.Context, mode string) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer a.Shutdown()

	a.logger.Info("running application", "mode", mode)

	switch mode {
	case ModeMigrate:
		return a.migrate(ctx)
	case ModeServer:
		// сервер сам приводит схему к актуальной версии, как и режим migrate
		if err := a.migrate(ctx); err != nil {
			return err
		}
		return runServer(ctx, a.Config, a.handler, a.logger)
	case ModeWorker:
		return runWorker(ctx, a.cleanupUseCase, a.cleanupConsumer, a.logger)
	default:
		return fmt.Errorf("неизвестный режим: %s (используйте 'server', 'worker' или 'migrate')", mode)
	}
}

// migrate применяет миграции и создает роли и администратора
func (a *App) migrate(ctx context.Context) error {
	if err := a.db.Migrate(a.Config.MigrationsPath); err != nil {
		return err
	}
	if err := a.seeder.EnsureRoles(ctx); err != nil {
		return err
	}
	return a.seeder.EnsureAdmin(ctx, a.Config.Admin.Login, a.Config.Admin.Password, a.Config.Admin.Mail)
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() {
	if a.closeQueue != nil {
		a.closeQueue()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("failed to close database", "error", err)
		}
	}
	a.logger.Info("application resources released")
}
