package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"weekplan/internal/model"

	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
)

// wireTask is the persisted shape of one task under the "tasks" key:
//
//	{"Mon-9": {"title": "Write report", "status": "pending"}}
type wireTask struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

// EncodeBoard serializes the full board.
func EncodeBoard(b model.Board) (string, error) {
	wire := make(map[string]wireTask, len(b))
	for k, t := range b {
		if !k.Valid() {
			return "", fmt.Errorf("encode board: invalid slot %s", k)
		}
		st := t.Status
		if !st.Valid() {
			st = model.StatusPending
		}
		wire[k.String()] = wireTask{Title: t.Title, Status: string(st)}
	}
	out, err := json.Marshal(wire)
	if err != nil {
		return "", fmt.Errorf("encode board: %w", err)
	}
	return string(out), nil
}

// DecodeBoard parses a stored board. Any malformed or non-canonical slot key ("mon-09" for
// "Mon-9") or invalid status fails the whole value; entries with an empty title are skipped.
func DecodeBoard(s string) (model.Board, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return model.Board{}, nil
	}
	var wire map[string]wireTask
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	out := make(model.Board, len(wire))
	for rawKey, t := range wire {
		k, err := model.ParseSlotKey(rawKey)
		if err != nil {
			return nil, fmt.Errorf("decode board: %w", err)
		}
		// Two spellings of one slot would otherwise race for it in map order.
		if k.String() != rawKey {
			return nil, fmt.Errorf("decode board: non-canonical slot key %q (want %q)", rawKey, k.String())
		}
		st := model.Status(t.Status)
		if t.Status == "" {
			st = model.StatusPending
		}
		if !st.Valid() {
			return nil, fmt.Errorf("decode board: slot %s: invalid status %q", rawKey, t.Status)
		}
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		out[k] = model.Task{Title: t.Title, Status: st}
	}
	return out, nil
}

// BoardStore reads and writes the task board under KeyTasks.
type BoardStore struct {
	kv  KV
	log *log.Logger
}

func NewBoardStore(kv KV, logger *log.Logger) *BoardStore {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &BoardStore{kv: kv, log: logger}
}

// LoadBoard is best effort: a missing or unreadable board yields an empty one. Only I/O
// failures of the backend itself are returned.
func (s *BoardStore) LoadBoard(ctx context.Context) (model.Board, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		if errors.Is(err, ErrCorrupt) {
			s.log.Warn("stored data unreadable; starting with an empty board", "err", err)
			return model.Board{}, nil
		}
		return nil, err
	}
	if !ok {
		s.log.Debug("no stored board; starting empty")
		return model.Board{}, nil
	}
	b, err := DecodeBoard(raw)
	if err != nil {
		s.log.Warn("stored board malformed; starting with an empty board", "err", err)
		return model.Board{}, nil
	}
	s.log.Debug("board loaded", "tasks", len(b))
	return b, nil
}

// SaveBoard replaces the stored board with b.
func (s *BoardStore) SaveBoard(ctx context.Context, b model.Board) error {
	raw, err := EncodeBoard(b)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyTasks, raw); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	s.log.Debug("board saved", "tasks", len(b))
	return nil
}
