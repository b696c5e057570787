package postgres

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm создает *gorm.DB поверх уже открытого пула соединений,
// чтобы GORM и sqlx делили одни и те же соединения
func OpenGorm(db *sql.DB, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("failed to initialize GORM", "error", err)
		return nil, fmt.Errorf("ошибка инициализации GORM: %w", err)
	}
	return gormDB, nil
}
