package utils

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glog "gorm.io/gorm/logger"
)

// InitDatabase opens a *gorm.DB for the configured driver.
// Supported drivers: sqlite (default, pure-Go), mysql, postgres.
func InitDatabase(logWriter io.Writer, driver, dsn string) (*gorm.DB, error) {
	if logWriter == nil {
		logWriter = io.Discard
	}
	gormLogger := glog.New(
		log.New(logWriter, "\r\n", log.LstdFlags),
		glog.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  glog.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "", "sqlite", "sqlite3":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", driver)
	}

	return gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
}

// MakeMigrates runs AutoMigrate for each entity one at a time so a failure
// names the entity that caused it.
func MakeMigrates(db *gorm.DB, entities []any) error {
	for _, entity := range entities {
		if err := db.AutoMigrate(entity); err != nil {
			return fmt.Errorf("migrate %T: %w", entity, err)
		}
	}
	return nil
}
