package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend selection.
//
// Default: SQLite (weekplan.sqlite). Set WEEKPLAN_BACKEND=json (or --backend json) to keep
// the board in a plain kv.json file instead.
const envBackend = "WEEKPLAN_BACKEND"

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendJSON   Backend = "json"
)

const (
	sqliteFileName = "weekplan.sqlite"
	kvFileName     = "kv.json"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case string(BackendSQLite), "sqlite3":
		return BackendSQLite, nil
	case string(BackendJSON):
		return BackendJSON, nil
	default:
		return "", fmt.Errorf("unknown backend: %q (expected sqlite|json)", s)
	}
}

type Store struct {
	Dir string

	// Backend overrides env/config/auto-detection when set.
	Backend Backend
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) kvPath() string {
	return filepath.Join(s.Dir, kvFileName)
}

// ResolvedBackend reports which backend Open will use.
//
// Priority: Store.Backend, WEEKPLAN_BACKEND, then auto-detect (an existing kv.json without a
// sqlite file keeps using JSON), then SQLite.
func (s Store) ResolvedBackend() Backend {
	if s.Backend != "" {
		return s.Backend
	}
	if b, err := ParseBackend(getenv(envBackend)); err == nil && b != "" {
		return b
	}
	if fileExists(s.kvPath()) && !fileExists(s.sqlitePath()) {
		return BackendJSON
	}
	return BackendSQLite
}

// Open returns the key-value store for this workspace. Callers must Close it.
func (s Store) Open(ctx context.Context) (KV, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, fmt.Errorf("store dir is empty")
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	switch s.ResolvedBackend() {
	case BackendJSON:
		return newJSONKV(s.kvPath()), nil
	default:
		kv, err := openSQLiteKV(ctx, s.sqlitePath())
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", sqliteFileName, err)
		}
		return kv, nil
	}
}

// WorkspaceDir returns ~/.weekplan/workspaces/<name> (or under WEEKPLAN_CONFIG_DIR).
func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func getenv(k string) string { return os.Getenv(k) }

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
