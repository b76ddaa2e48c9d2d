package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/acmedash/billing-admin/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings required to open the connection pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Timeout         time.Duration
}

// Connect opens a pooled Postgres handle, applies the pool limits and
// verifies connectivity with a ping. A default timeout is applied when none
// is provided.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	db, err := gorm.Open(gormpg.Open(cfg.DSN), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Close releases every pooled connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withConn runs fn on a single connection taken from the pool. The
// connection goes back to the pool when fn returns, whether or not it
// failed. Any error is reported as a PersistenceError for op.
func withConn(ctx context.Context, db *gorm.DB, op string, fn func(conn *gorm.DB) error) error {
	if err := db.WithContext(ctx).Connection(fn); err != nil {
		return &domain.PersistenceError{Op: op, Err: err}
	}
	return nil
}

// validID reports whether id can match a uuid primary key. Anything else
// cannot exist in the store and is treated as absent.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// likePattern wraps query for a case-insensitive substring match.
func likePattern(query string) string {
	return "%" + query + "%"
}
