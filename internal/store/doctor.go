package store

import (
	"context"
	"errors"
	"fmt"
	"os"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

type DoctorReport struct {
	Dir     string        `json:"dir"`
	Backend Backend       `json:"backend"`
	Tasks   int           `json:"tasks"`
	Issues  []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

// Doctor inspects a workspace without modifying it. Problems the planner would silently
// paper over (a board that loads as empty, an unreadable kv.json) are reported here.
func Doctor(ctx context.Context, s Store) DoctorReport {
	r := DoctorReport{Dir: s.Dir, Backend: s.ResolvedBackend(), Issues: []DoctorIssue{}}
	add := func(level DoctorIssueLevel, code, path, format string, args ...any) {
		r.Issues = append(r.Issues, DoctorIssue{Level: level, Code: code, Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if _, err := LoadConfig(); err != nil {
		p, _ := ConfigPath()
		add(DoctorIssueLevelError, "config_unreadable", p, "%v", err)
	}

	if st, err := os.Stat(s.Dir); err != nil || !st.IsDir() {
		add(DoctorIssueLevelWarn, "workspace_missing", s.Dir, "workspace directory does not exist yet; it is created on first use")
		return r
	}

	if fileExists(s.sqlitePath()) && fileExists(s.kvPath()) {
		add(DoctorIssueLevelWarn, "backend_ambiguous", s.Dir,
			"both %s and %s exist; using %s", sqliteFileName, kvFileName, r.Backend)
	}

	path := s.sqlitePath()
	if r.Backend == BackendJSON {
		path = s.kvPath()
	}
	if !fileExists(path) {
		return r
	}

	kv, err := s.Open(ctx)
	if err != nil {
		add(DoctorIssueLevelError, "store_unreadable", path, "%v", err)
		return r
	}
	defer kv.Close()

	raw, ok, err := kv.Get(ctx, KeyTasks)
	switch {
	case errors.Is(err, ErrCorrupt):
		add(DoctorIssueLevelError, "store_corrupt", path, "%v (the next change rewrites it after keeping a .bak copy)", err)
		return r
	case err != nil:
		add(DoctorIssueLevelError, "store_unreadable", path, "%v", err)
		return r
	case !ok:
		return r
	}

	b, err := DecodeBoard(raw)
	if err != nil {
		add(DoctorIssueLevelError, "board_malformed", path, "%v (the board loads as empty and the next change overwrites it)", err)
		return r
	}
	r.Tasks = len(b)
	return r
}
