package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/dm"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
	"github.com/stephenafamo/scan"
	_ "modernc.org/sqlite"
)

var _ IKVTable = (*SQLiteKVTable)(nil)

// SQLiteKVTable is the embedded single-file implementation of IKVTable.
type SQLiteKVTable struct {
	exec bob.Executor
}

// OpenSQLite opens (or creates) the database at path and applies migrations.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunSQLiteMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return db, nil
}

func NewSQLiteKVTable(db *sql.DB) *SQLiteKVTable {
	return &SQLiteKVTable{exec: bob.NewDB(db)}
}

func (t *SQLiteKVTable) Get(ctx context.Context, key string) (string, bool, error) {
	query := sqlite.Select(
		sm.Columns("value"),
		sm.From(kvTableName),
		sm.Where(sqlite.Quote("key").EQ(sqlite.Arg(key))),
	)
	value, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[string])
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (t *SQLiteKVTable) Set(ctx context.Context, key, value string) error {
	query := sqlite.Insert(
		im.Into(kvTableName, "key", "value"),
		im.Values(sqlite.Arg(key), sqlite.Arg(value)),
		im.OnConflict("key").DoUpdate(
			im.SetExcluded("value"),
			im.SetCol("updated_at").To(sqlite.Raw("CURRENT_TIMESTAMP")),
		),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

func (t *SQLiteKVTable) Delete(ctx context.Context, key string) error {
	query := sqlite.Delete(
		dm.From(kvTableName),
		dm.Where(sqlite.Quote("key").EQ(sqlite.Arg(key))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}
