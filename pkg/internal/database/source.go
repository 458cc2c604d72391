package database

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSource opens the configured database and returns the handle.
// The handle is constructed once at process start and passed down
// explicitly; nothing in this package holds onto it.
func NewSource() (*gorm.DB, error) {
	dsn := viper.GetString("database.dsn")

	var dialector gorm.Dialector
	switch viper.GetString("database.driver") {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		dialector = postgres.Open(dsn)
	}

	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(&log.Logger, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
}
