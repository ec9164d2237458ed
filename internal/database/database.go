// Package database opens the gorm connection and applies the schema.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"taskboard/internal/apperror"
	"taskboard/internal/config"

	"github.com/glebarez/sqlite"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

//go:embed migrations
var migrations embed.FS

// Open connects to the configured store, retrying up to cfg.DBConnectRetries
// times. When every attempt fails the returned error is StoreUnavailable.
func Open(cfg *config.Config, logger log.FieldLogger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.New(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectRetries; attempt++ {
		db, err := open(cfg, gormCfg)
		if err == nil {
			return db, nil
		}
		lastErr = err

		logger.WithError(err).WithFields(log.Fields{
			"attempt": attempt,
			"retries": cfg.DBConnectRetries,
		}).Warn("Database not reachable")

		if attempt < cfg.DBConnectRetries {
			time.Sleep(cfg.DBRetryDelay)
		}
	}
	return nil, apperror.StoreUnavailable(lastErr)
}

func open(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.SQLitePath))
	default:
		dialector = postgres.Open(cfg.PostgresDSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == config.DriverSQLite {
		// one writer at a time; this is what serializes list mutations on SQLite
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SQLiteDSN enables foreign keys on every connection opened for path.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)"
}

// Migrate brings the schema up to date. Postgres goes through golang-migrate;
// the SQLite schema is idempotent DDL applied directly.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if cfg.DBDriver == config.DriverSQLite {
		return migrateSQLite(db)
	}

	src, err := iofs.New(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.MigrationURL())
	if err != nil {
		return fmt.Errorf("starting migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

func migrateSQLite(db *gorm.DB) error {
	files, err := fs.Glob(migrations, "migrations/sqlite/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		body, err := migrations.ReadFile(name)
		if err != nil {
			return err
		}
		for _, stmt := range strings.Split(string(body), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}
	return nil
}
