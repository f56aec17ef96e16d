package planner

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"weekplan/internal/model"

	"pgregory.net/rapid"
)

type recordingSaver struct {
	saves []model.Board
	err   error
}

func (s *recordingSaver) SaveBoard(_ context.Context, b model.Board) error {
	s.saves = append(s.saves, b)
	return s.err
}

var (
	mon9  = model.Slot(model.Mon, 9)
	tue10 = model.Slot(model.Tue, 10)
)

func TestCommitEntry_StoresPendingTask(t *testing.T) {
	saver := &recordingSaver{}
	g := New(nil, WithSaver(saver))

	g.OpenEntry(mon9)
	if !g.EntryOpen() {
		t.Fatalf("expected entry to be open")
	}
	if got, ok := g.EntryTarget(); !ok || got != mon9 {
		t.Fatalf("expected target %v, got %v ok=%v", mon9, got, ok)
	}
	if len(saver.saves) != 0 {
		t.Fatalf("opening the entry must not save")
	}

	if err := g.CommitEntry("Write report"); err != nil {
		t.Fatalf("CommitEntry: %v", err)
	}
	want := model.Task{Title: "Write report", Status: model.StatusPending}
	if got, ok := g.Task(mon9); !ok || got != want {
		t.Fatalf("expected %#v, got %#v ok=%v", want, got, ok)
	}
	if len(saver.saves) != 1 || !reflect.DeepEqual(saver.saves[0], model.Board{mon9: want}) {
		t.Fatalf("expected one full-board save, got %#v", saver.saves)
	}
}

func TestCommitEntry_OverwritesOccupiedSlot(t *testing.T) {
	g := New(model.Board{mon9: {Title: "Old", Status: model.StatusOverdue}})
	g.OpenEntry(mon9)
	if err := g.CommitEntry("New"); err != nil {
		t.Fatalf("CommitEntry: %v", err)
	}
	if got, _ := g.Task(mon9); got.Title != "New" || got.Status != model.StatusPending {
		t.Fatalf("expected overwrite with fresh pending task, got %#v", got)
	}
}

func TestCommitEntry_NoTargetIsNoop(t *testing.T) {
	saver := &recordingSaver{}
	g := New(nil, WithSaver(saver))
	if err := g.CommitEntry("Orphan"); err != nil {
		t.Fatalf("CommitEntry: %v", err)
	}
	if g.Len() != 0 || len(saver.saves) != 0 {
		t.Fatalf("expected no change without a target")
	}
}

func TestCloseEntry_ClearsTarget(t *testing.T) {
	g := New(nil)
	g.OpenEntry(mon9)
	g.CloseEntry()
	if g.EntryOpen() {
		t.Fatalf("expected entry closed")
	}
	if _, ok := g.EntryTarget(); ok {
		t.Fatalf("expected target cleared")
	}
	if err := g.CommitEntry("late"); err != nil || g.Len() != 0 {
		t.Fatalf("commit after close must be a no-op, len=%d err=%v", g.Len(), err)
	}
}

func TestCycleStatus_ThreeTimesRestores(t *testing.T) {
	g := New(model.Board{mon9: model.NewTask("Gym")})
	want := []model.Status{model.StatusCompleted, model.StatusOverdue, model.StatusPending}
	for i, st := range want {
		if err := g.CycleStatus(mon9); err != nil {
			t.Fatalf("CycleStatus: %v", err)
		}
		if got, _ := g.Task(mon9); got.Status != st {
			t.Fatalf("cycle %d: expected %q, got %q", i+1, st, got.Status)
		}
	}
}

func TestCycleStatus_EmptySlotIsNoop(t *testing.T) {
	saver := &recordingSaver{}
	g := New(nil, WithSaver(saver))
	if err := g.CycleStatus(mon9); err != nil {
		t.Fatalf("CycleStatus: %v", err)
	}
	if g.Len() != 0 || len(saver.saves) != 0 {
		t.Fatalf("expected no-op on empty slot")
	}
}

func TestCompleteDrag_MovesAndOverwrites(t *testing.T) {
	src := model.Task{Title: "Write report", Status: model.StatusCompleted}
	g := New(model.Board{mon9: src, tue10: model.NewTask("Doomed")})

	g.BeginDrag(mon9)
	if err := g.CompleteDrag(tue10); err != nil {
		t.Fatalf("CompleteDrag: %v", err)
	}
	if _, ok := g.Task(mon9); ok {
		t.Fatalf("expected source slot to be empty")
	}
	if got, _ := g.Task(tue10); got != src {
		t.Fatalf("expected target to hold the moved task, got %#v", got)
	}
	if g.Dragging() {
		t.Fatalf("expected drag state cleared")
	}
}

func TestCompleteDrag_SameKeyOrNoDragIsNoop(t *testing.T) {
	saver := &recordingSaver{}
	before := model.Board{mon9: model.NewTask("Stay")}
	g := New(before.Clone(), WithSaver(saver))

	if err := g.CompleteDrag(tue10); err != nil {
		t.Fatalf("CompleteDrag without drag: %v", err)
	}
	g.BeginDrag(mon9)
	if err := g.CompleteDrag(mon9); err != nil {
		t.Fatalf("CompleteDrag same key: %v", err)
	}
	if !reflect.DeepEqual(before, g.Board()) {
		t.Fatalf("board changed: %#v", g.Board())
	}
	if len(saver.saves) != 0 {
		t.Fatalf("expected no saves, got %d", len(saver.saves))
	}
}

func TestCancelDrag(t *testing.T) {
	g := New(model.Board{mon9: model.NewTask("x")})
	g.BeginDrag(mon9)
	g.CancelDrag()
	if g.Dragging() {
		t.Fatalf("expected no drag")
	}
	if err := g.CompleteDrag(tue10); err != nil || g.Len() != 1 {
		t.Fatalf("drop after cancel must be a no-op")
	}
	if _, ok := g.Task(mon9); !ok {
		t.Fatalf("task should remain at source")
	}
}

func TestHover_IsCosmetic(t *testing.T) {
	saver := &recordingSaver{}
	g := New(nil, WithSaver(saver))
	g.SetHover(mon9)
	if got, ok := g.Hover(); !ok || got != mon9 {
		t.Fatalf("expected hover %v, got %v", mon9, got)
	}
	g.ClearHover()
	if _, ok := g.Hover(); ok {
		t.Fatalf("expected hover cleared")
	}
	if len(saver.saves) != 0 {
		t.Fatalf("hover must not save")
	}
}

func TestSaveError_KeepsMutationAndReports(t *testing.T) {
	saver := &recordingSaver{err: errors.New("disk full")}
	var notified int
	g := New(nil, WithSaver(saver), WithOnChange(func(model.Board) { notified++ }))
	g.OpenEntry(mon9)
	if err := g.CommitEntry("Still here"); err == nil {
		t.Fatalf("expected save error to be returned")
	}
	if _, ok := g.Task(mon9); !ok {
		t.Fatalf("in-memory board should keep the mutation")
	}
	if notified != 1 {
		t.Fatalf("expected change notification despite save error, got %d", notified)
	}
}

func TestOnChange_ReceivesCopy(t *testing.T) {
	var last model.Board
	g := New(model.Board{mon9: model.NewTask("a")}, WithOnChange(func(b model.Board) { last = b }))
	if err := g.CycleStatus(mon9); err != nil {
		t.Fatalf("CycleStatus: %v", err)
	}
	delete(last, mon9)
	if _, ok := g.Task(mon9); !ok {
		t.Fatalf("listener mutated the grid's board")
	}
}

func TestNew_DropsSlotsOutsideGrid(t *testing.T) {
	g := New(model.Board{{Day: model.Mon, Hour: 2}: model.NewTask("3am"), mon9: model.NewTask("ok")})
	if g.Len() != 1 {
		t.Fatalf("expected only the valid slot to survive, got %d", g.Len())
	}
}

func TestCompleteDrag_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		board := model.Board{}
		n := rapid.IntRange(1, 20).Draw(t, "n")
		for i := 0; i < n; i++ {
			k := model.SlotAt(rapid.IntRange(0, model.CellCount-1).Draw(t, "slot"))
			board[k] = model.Task{
				Title:  rapid.StringMatching(`[A-Za-z ]{1,12}`).Draw(t, "title"),
				Status: rapid.SampledFrom([]model.Status{model.StatusPending, model.StatusCompleted, model.StatusOverdue}).Draw(t, "status"),
			}
		}
		keys := board.Keys()
		src := rapid.SampledFrom(keys).Draw(t, "src")
		dst := model.SlotAt(rapid.IntRange(0, model.CellCount-1).Draw(t, "dst"))

		g := New(board.Clone())
		g.BeginDrag(src)
		if err := g.CompleteDrag(dst); err != nil {
			t.Fatalf("CompleteDrag: %v", err)
		}
		after := g.Board()

		if src == dst {
			if !reflect.DeepEqual(board, after) {
				t.Fatalf("same-key drop changed the board")
			}
			return
		}
		if _, ok := after[src]; ok {
			t.Fatalf("source %v still occupied", src)
		}
		if after[dst] != board[src] {
			t.Fatalf("target %v = %#v, want %#v", dst, after[dst], board[src])
		}
		for k, v := range board {
			if k == src || k == dst {
				continue
			}
			if after[k] != v {
				t.Fatalf("unrelated slot %v changed", k)
			}
		}
	})
}
