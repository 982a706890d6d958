package sqlconfig

import "context"

// kvTableName holds one JSON or scalar document per key.
const kvTableName = "kv_store"

// IKVTable defines the key-value operations the persistence layer runs on.
// This abstraction allows swapping the backend (memory, SQLite, Postgres) without changing callers.
//
//go:generate mockery --name IKVTable --output mock_IKVTable.go
type IKVTable interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set overwrites the value of key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
