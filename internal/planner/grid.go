// Package planner holds the weekly grid state: the task board, entry/drag/hover/focus
// state, and the operations the UI drives. It has no terminal dependency.
package planner

import (
	"context"
	"io"

	"weekplan/internal/model"

	"github.com/charmbracelet/log"
)

// Saver persists the full board after every mutation.
type Saver interface {
	SaveBoard(ctx context.Context, b model.Board) error
}

type Option func(*Grid)

func WithSaver(s Saver) Option {
	return func(g *Grid) { g.saver = s }
}

func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		if l != nil {
			g.log = l
		}
	}
}

// WithOnChange registers a callback run after each board mutation has been saved.
// It receives a copy of the board.
func WithOnChange(fn func(model.Board)) Option {
	return func(g *Grid) { g.onChange = fn }
}

// Grid is single-owner state; it is not safe for concurrent use.
type Grid struct {
	board model.Board

	entryOpen   bool
	entryTarget *model.SlotKey
	dragSource  *model.SlotKey
	hover       *model.SlotKey
	focus       int

	saver    Saver
	onChange func(model.Board)
	log      *log.Logger
}

// New takes ownership of board. Slots outside the grid are dropped.
func New(board model.Board, opts ...Option) *Grid {
	g := &Grid{
		board: model.Board{},
		log:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	for k, t := range board {
		if !k.Valid() {
			g.log.Warn("dropping task outside the grid", "slot", k.String())
			continue
		}
		g.board[k] = t
	}
	return g
}

// Board returns a copy of the current board.
func (g *Grid) Board() model.Board { return g.board.Clone() }

func (g *Grid) Task(k model.SlotKey) (model.Task, bool) {
	t, ok := g.board[k]
	return t, ok
}

func (g *Grid) Len() int { return len(g.board) }

func (g *Grid) Focus() int { return g.focus }

// SetFocus moves keyboard focus; out-of-range indexes wrap.
func (g *Grid) SetFocus(i int) { g.focus = model.WrapIndex(i) }

func (g *Grid) FocusedSlot() model.SlotKey { return model.SlotAt(g.focus) }

func (g *Grid) EntryOpen() bool { return g.entryOpen }

func (g *Grid) EntryTarget() (model.SlotKey, bool) { return deref(g.entryTarget) }

func (g *Grid) DragSource() (model.SlotKey, bool) { return deref(g.dragSource) }

func (g *Grid) Dragging() bool { return g.dragSource != nil }

func (g *Grid) Hover() (model.SlotKey, bool) { return deref(g.hover) }

// OpenEntry records slot as the entry target and opens the entry modal.
func (g *Grid) OpenEntry(slot model.SlotKey) {
	g.entryTarget = &slot
	g.entryOpen = true
}

// CloseEntry discards the target and closes the modal.
func (g *Grid) CloseEntry() {
	g.entryTarget = nil
	g.entryOpen = false
}

// CommitEntry stores a new pending task at the entry target, replacing whatever was there.
// It is a no-op when no target is recorded. Title validation belongs to the modal.
func (g *Grid) CommitEntry(title string) error {
	if g.entryTarget == nil {
		return nil
	}
	k := *g.entryTarget
	if prev, ok := g.board[k]; ok {
		g.log.Debug("overwriting task", "slot", k.String(), "previous", prev.Title)
	}
	g.board[k] = model.NewTask(title)
	return g.changed("commit", k)
}

// BeginDrag records key as the drag source. Callers only start drags from occupied slots.
func (g *Grid) BeginDrag(key model.SlotKey) {
	g.dragSource = &key
}

// CancelDrag forgets the drag source without touching the board.
func (g *Grid) CancelDrag() {
	g.dragSource = nil
}

// CompleteDrag moves the dragged task onto target, replacing any task there, and empties
// the source slot. Dropping onto the source itself, or with no drag active, does nothing.
func (g *Grid) CompleteDrag(target model.SlotKey) error {
	if g.dragSource == nil || *g.dragSource == target {
		return nil
	}
	src := *g.dragSource
	g.board[target] = g.board[src]
	delete(g.board, src)
	g.dragSource = nil
	return g.changed("move", target, "from", src.String())
}

// CycleStatus advances the task at key along pending -> completed -> overdue -> pending.
func (g *Grid) CycleStatus(key model.SlotKey) error {
	t, ok := g.board[key]
	if !ok {
		return nil
	}
	t.Status = t.Status.Next()
	g.board[key] = t
	return g.changed("cycle", key, "status", string(t.Status))
}

func (g *Grid) SetHover(key model.SlotKey) { g.hover = &key }

func (g *Grid) ClearHover() { g.hover = nil }

// changed runs the write-through save and then notifies the change listener.
func (g *Grid) changed(op string, slot model.SlotKey, kv ...any) error {
	g.log.Debug(op, append([]any{"slot", slot.String()}, kv...)...)
	var err error
	if g.saver != nil {
		if err = g.saver.SaveBoard(context.Background(), g.board.Clone()); err != nil {
			g.log.Error("save failed", "op", op, "err", err)
		}
	}
	if g.onChange != nil {
		g.onChange(g.board.Clone())
	}
	return err
}

func deref(k *model.SlotKey) (model.SlotKey, bool) {
	if k == nil {
		return model.SlotKey{}, false
	}
	return *k, true
}
