package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"auction-core/internal/config"
	"auction-core/internal/domain"
	"auction-core/internal/infrastructure/memory"
	"auction-core/internal/infrastructure/mysql"
	"auction-core/internal/infrastructure/postgres"
	"auction-core/pkg/logger"

	_ "github.com/go-sql-driver/mysql"
)

// Closer releases whatever InitializeStore or InitializeEvents opened.
type Closer func() error

func noopCloser() error { return nil }

func InitializeMysql(ctx context.Context, cfg config.MySQLConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// InitializeStore opens the store selected by store.driver and, when
// store.migrate is set, brings its schema up to date.
func InitializeStore(ctx context.Context, cfg *config.Config, log logger.Logger) (domain.AuctionStore, Closer, error) {
	switch cfg.Store.Driver {
	case config.DriverMySQL:
		db, err := InitializeMysql(ctx, cfg.MySQL)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Store.Migrate {
			if err := mysql.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		log.Info("Connected to MySQL")
		return mysql.NewMySQLAuctionStore(db), db.Close, nil

	case config.DriverPostgres:
		gdb, err := postgres.Connect(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Postgres.ConnMaxLifetime)

		if cfg.Store.Migrate {
			if err := postgres.Migrate(gdb.WithContext(ctx)); err != nil {
				_ = sqlDB.Close()
				return nil, nil, err
			}
		}
		store, err := postgres.NewPostgresAuctionStore(gdb, cfg.Postgres.LockTimeout)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Info("Connected to Postgres")
		return store, sqlDB.Close, nil

	case config.DriverMemory:
		log.Warn("Using in-memory store; state is lost on exit and not shared between processes")
		return memory.NewStore(cfg.Memory.LockTimeout), noopCloser, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
