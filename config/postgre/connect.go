package postgre

import (
	"context"
	"fmt"
	"time"

	"github.com/friendsofgo/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"carewatch/config"
)

// defaultConnectTimeout is the maximum time to wait for the initial ping.
const defaultConnectTimeout = 5 * time.Second

// Connect opens a PostgreSQL connection through GORM and verifies it with a ping.
// Error translation is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey.
func Connect(ctx context.Context, cfg config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PostgreSQL connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to access underlying sql.DB")
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to ping PostgreSQL")
	}

	return db, nil
}

// Disconnect closes the underlying connection pool.
func Disconnect(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access underlying sql.DB")
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrap(err, "failed to close PostgreSQL connection")
	}
	return nil
}

// HealthCheck pings the database; used by the ops readiness endpoint.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("PostgreSQL client not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to access underlying sql.DB")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "PostgreSQL health check failed")
	}
	return nil
}
