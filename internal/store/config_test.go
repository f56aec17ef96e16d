package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfig_SaveLoad_RoundTrip(t *testing.T) {
	t.Setenv("WEEKPLAN_CONFIG_DIR", t.TempDir())

	cfg0, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig (missing): %v", err)
	}
	if cfg0.CurrentWorkspace != "" || cfg0.TUI != nil {
		t.Fatalf("expected zero config, got %#v", cfg0)
	}

	want := &GlobalConfig{
		CurrentWorkspace: "work",
		Backend:          "json",
		TUI:              &TUIConfig{Theme: "dark", Glyphs: "ascii"},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}

	// Second save keeps a backup of the first.
	want.CurrentWorkspace = "home"
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig (second): %v", err)
	}
	path, _ := ConfigPath()
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("expected config backup: %v", err)
	}
}

func TestConfig_LoadCorruptIsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WEEKPLAN_CONFIG_DIR", dir)
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestWorkspaces(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WEEKPLAN_CONFIG_DIR", dir)

	names, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no workspaces, got %v", names)
	}

	for _, n := range []string{"work", "home"} {
		d, err := WorkspaceDir(n)
		if err != nil {
			t.Fatalf("WorkspaceDir(%q): %v", n, err)
		}
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	names, err = ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"home", "work"}) {
		t.Fatalf("unexpected workspaces %v", names)
	}

	for _, bad := range []string{"", "  ", "a/b", ".."} {
		if _, err := WorkspaceDir(bad); err == nil {
			t.Fatalf("WorkspaceDir(%q): expected error", bad)
		}
	}
}
