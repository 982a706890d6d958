package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/config"
	"github.com/carson-networks/expense-tracker/internal/storage/sqlconfig"
)

// Storage persists per-user ledger state as string values in a key-value table.
type Storage struct {
	DB *sql.DB
	KV sqlconfig.IKVTable
}

// NewStorage opens the backend selected by env and brings its schema up to date.
func NewStorage(env *config.Config, logger *logrus.Logger) (*Storage, error) {
	switch env.StorageBackend {
	case config.BackendSQLite:
		db, err := sqlconfig.OpenSQLite(env.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		logger.WithField("path", env.SQLiteDBPath).Info("Storage.NewStorage.sqlite")
		return &Storage{DB: db, KV: sqlconfig.NewSQLiteKVTable(db)}, nil

	case config.BackendPostgres:
		db, err := sql.Open("postgres", env.PostgresURL())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.Ping(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		result, err := sqlconfig.RunPostgresMigrations(db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"preMigrationVersion":  result.PreMigrationVersion,
			"postMigrationVersion": result.PostMigrationVersion,
		}).Info("Storage.NewStorage.postgres")
		return &Storage{DB: db, KV: sqlconfig.NewKVTable(db)}, nil

	default:
		logger.Info("Storage.NewStorage.memory")
		return NewMemoryStorage(), nil
	}
}

// NewMemoryStorage returns a Storage that lives only as long as the process.
func NewMemoryStorage() *Storage {
	return &Storage{KV: sqlconfig.NewMemoryKVTable()}
}

// Close releases the database handle, if any.
func (s *Storage) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Storage) get(ctx context.Context, op, key string) (string, bool, error) {
	value, ok, err := s.KV.Get(ctx, key)
	if err != nil {
		return "", false, &StorageError{Op: op, Key: key, Err: err}
	}
	return value, ok, nil
}

func (s *Storage) set(ctx context.Context, op, key, value string) error {
	if err := s.KV.Set(ctx, key, value); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}

// Ping checks the database connection. The memory backend is always reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.DB == nil {
		return nil
	}
	return s.DB.PingContext(ctx)
}
