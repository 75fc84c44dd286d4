package database

import (
	"fmt"
	"strings"
	"time"

	"defense-dash/internal/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Open connects to the audit database described by dsn and migrates the schema.
// A postgres:// or postgresql:// DSN selects Postgres, anything else is treated
// as a SQLite file path (":memory:" included).
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgres(dsn) {
		// postgres может подниматься дольше приложения — пробуем несколько раз
		for i := 1; i <= maxAttempts; i++ {
			log.Info("connecting to audit db", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}

			log.Warn("failed to connect to audit db", zap.Error(err))
			time.Sleep(retryBackoff)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err == nil {
			// sqlite держим на одном соединении, иначе ":memory:" разъезжается по разным базам
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return nil, fmt.Errorf("open audit db: %w", dbErr)
			}
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		return nil, fmt.Errorf("migrate audit db: %w", err)
	}

	log.Info("audit db ready", zap.Bool("postgres", isPostgres(dsn)))
	return db, nil
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
