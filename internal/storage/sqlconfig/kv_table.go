package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IKVTable = (*KVTable)(nil)

// KVTable is the Postgres implementation of IKVTable.
type KVTable struct {
	exec bob.Executor
}

func NewKVTable(db *sql.DB) *KVTable {
	return &KVTable{exec: bob.NewDB(db)}
}

// Get retrieves the value stored under key.
func (t *KVTable) Get(ctx context.Context, key string) (string, bool, error) {
	query := psql.Select(
		sm.Columns("value"),
		sm.From(kvTableName),
		sm.Where(psql.Quote("key").EQ(psql.Arg(key))),
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

// Set upserts value under key.
func (t *KVTable) Set(ctx context.Context, key, value string) error {
	query := psql.Insert(
		im.Into(kvTableName, "key", "value"),
		im.Values(psql.Arg(key), psql.Arg(value)),
		im.OnConflict("key").DoUpdate(im.SetExcluded("value")),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// Delete removes key if present.
func (t *KVTable) Delete(ctx context.Context, key string) error {
	query := psql.Delete(
		dm.From(kvTableName),
		dm.Where(psql.Quote("key").EQ(psql.Arg(key))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}
