package store

import (
	"context"
	"os"
	"testing"
)

func TestKV_GetSet(t *testing.T) {
	for _, backend := range []Backend{BackendSQLite, BackendJSON} {
		t.Run(string(backend), func(t *testing.T) {
			ctx := context.Background()
			kv, err := Store{Dir: t.TempDir(), Backend: backend}.Open(ctx)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer kv.Close()

			if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}
			if err := kv.Set(ctx, "a", "1"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, "a", "2"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			if err := kv.Set(ctx, "b", ""); err != nil {
				t.Fatalf("set empty: %v", err)
			}
			if v, ok, err := kv.Get(ctx, "a"); err != nil || !ok || v != "2" {
				t.Fatalf("expected a=2, got %q ok=%v err=%v", v, ok, err)
			}
			if v, ok, err := kv.Get(ctx, "b"); err != nil || !ok || v != "" {
				t.Fatalf("expected b present and empty, got %q ok=%v err=%v", v, ok, err)
			}
		})
	}
}

func TestStore_ResolvedBackend(t *testing.T) {
	dir := t.TempDir()

	withEnv(t, envBackend, "", func() {
		if got := (Store{Dir: dir}).ResolvedBackend(); got != BackendSQLite {
			t.Fatalf("expected sqlite default, got %q", got)
		}

		if err := os.WriteFile(Store{Dir: dir}.kvPath(), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write kv.json: %v", err)
		}
		if got := (Store{Dir: dir}).ResolvedBackend(); got != BackendJSON {
			t.Fatalf("expected json auto-detected, got %q", got)
		}
		if got := (Store{Dir: dir, Backend: BackendSQLite}).ResolvedBackend(); got != BackendSQLite {
			t.Fatalf("explicit backend should win, got %q", got)
		}
	})

	withEnv(t, envBackend, "sqlite", func() {
		if got := (Store{Dir: dir}).ResolvedBackend(); got != BackendSQLite {
			t.Fatalf("env backend should beat auto-detect, got %q", got)
		}
	})
}

func TestParseBackend(t *testing.T) {
	if b, err := ParseBackend(" JSON "); err != nil || b != BackendJSON {
		t.Fatalf("expected json, got %q err=%v", b, err)
	}
	if b, err := ParseBackend(""); err != nil || b != "" {
		t.Fatalf("expected empty backend to be allowed, got %q err=%v", b, err)
	}
	if _, err := ParseBackend("redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestStore_OpenRequiresDir(t *testing.T) {
	if _, err := (Store{}).Open(context.Background()); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}

func withEnv(t *testing.T, k, v string, fn func()) {
	t.Helper()
	old, had := os.LookupEnv(k)
	if err := os.Setenv(k, v); err != nil {
		t.Fatalf("setenv %s: %v", k, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(k, old)
		} else {
			_ = os.Unsetenv(k)
		}
	})
	fn()
}
