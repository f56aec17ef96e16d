package store

import (
	"context"
	"errors"
)

// KeyTasks holds the serialized task board.
const KeyTasks = "tasks"

// ErrCorrupt is returned by Get when the backing file exists but cannot be parsed.
var ErrCorrupt = errors.New("store: corrupt data")

// KV is the small persistent key-value surface the planner needs.
type KV interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
