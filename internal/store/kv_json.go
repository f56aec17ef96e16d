package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// jsonKV keeps every key in one JSON object file. The whole file is rewritten on Set.
type jsonKV struct {
	path string
	mu   sync.Mutex
}

func newJSONKV(path string) *jsonKV {
	return &jsonKV{path: path}
}

func (kv *jsonKV) read() (map[string]string, []byte, error) {
	b, err := os.ReadFile(kv.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil, nil
		}
		return nil, nil, err
	}
	if len(b) == 0 {
		return map[string]string{}, b, nil
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, b, fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(kv.path), err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, b, nil
}

func (kv *jsonKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	m, _, err := kv.read()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

func (kv *jsonKV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kv.mu.Lock()
	defer kv.mu.Unlock()

	m, prev, err := kv.read()
	if err != nil {
		if !errors.Is(err, ErrCorrupt) {
			return err
		}
		// Keep the unreadable file around for recovery, then start over.
		dir := filepath.Dir(kv.path)
		if err := atomicWriteFile(dir, kvFileName+".bak.*.tmp", kv.path+".bak", prev, 0o644); err != nil {
			return err
		}
		m = map[string]string{}
	}
	m[key] = value

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(filepath.Dir(kv.path), kvFileName+".*.tmp", kv.path, b, 0o644)
}

func (kv *jsonKV) Close() error { return nil }
