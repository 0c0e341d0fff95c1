package repositories

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"yatube/app/logger"
	"yatube/app/models"
)

// Config selects and tunes the SQL backend.
type Config struct {
	Driver       string // sqlite or postgres
	DSN          string // postgres only
	Path         string // sqlite only
	MaxIdleConns int
	MaxOpenConns int
	LogLevel     string
}

// Open connects to the configured database. SQLite connections always run
// with foreign key enforcement on, since cascades live in the schema.
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Migrate creates or updates the schema: tables, foreign keys with their
// referential actions, unique indexes and check constraints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// AutoMigrate only adds CHECK constraints while creating a table. SQLite
	// cannot add one afterwards, so only postgres gets the backfill.
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	m := db.Migrator()
	if !m.HasConstraint(&models.Follow{}, models.FollowCheckConstraint) {
		if err := m.CreateConstraint(&models.Follow{}, models.FollowCheckConstraint); err != nil {
			return fmt.Errorf("failed to create %s constraint: %w", models.FollowCheckConstraint, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Info().Msgf(format, args...)
}

func newGormLogger(level string) gormlogger.Interface {
	var lvl gormlogger.LogLevel
	switch logger.ParseLevel(level) {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		lvl = gormlogger.Info
	case zerolog.InfoLevel, zerolog.WarnLevel:
		lvl = gormlogger.Warn
	default:
		lvl = gormlogger.Error
	}

	return gormlogger.New(
		gormWriter{log: logger.WithField("component", "gorm")},
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  lvl,
			IgnoreRecordNotFoundError: true,
		},
	)
}
