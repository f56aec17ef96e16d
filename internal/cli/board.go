package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"weekplan/internal/model"
	"weekplan/internal/planner"
	"weekplan/internal/statusutil"
	"weekplan/internal/store"

	"github.com/spf13/cobra"
)

type taskJSON struct {
	Slot   string `json:"slot"`
	Day    string `json:"day"`
	Hour   int    `json:"hour"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func toTaskJSON(k model.SlotKey, t model.Task) taskJSON {
	return taskJSON{
		Slot:   k.String(),
		Day:    k.Day.String(),
		Hour:   k.Hour,
		Title:  t.Title,
		Status: statusutil.Label(t.Status),
	}
}

// boardSession is one CLI invocation's view of the board: the same grid the TUI drives,
// backed by the workspace store.
type boardSession struct {
	grid  *planner.Grid
	store store.Store
	kv    store.KV
}

func (s *boardSession) Close() error { return s.kv.Close() }

func openBoard(ctx context.Context, app *App) (*boardSession, error) {
	st, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	kv, err := st.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	bs := store.NewBoardStore(kv, app.log)
	b, err := bs.LoadBoard(ctx)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	g := planner.New(b, planner.WithSaver(bs), planner.WithLogger(app.log))
	return &boardSession{grid: g, store: st, kv: kv}, nil
}

// parseSlotArgs reads one slot from the front of args, either as "<day> <hour>" or as a
// single "Mon-9" token, and returns the remaining args.
func parseSlotArgs(args []string) (model.SlotKey, []string, error) {
	if len(args) == 0 {
		return model.SlotKey{}, nil, errInvalidSlot(args, errors.New("missing slot"))
	}
	if strings.Contains(args[0], "-") {
		k, err := model.ParseSlotKey(args[0])
		if err != nil {
			return model.SlotKey{}, nil, errInvalidSlot(args[:1], err)
		}
		return k, args[1:], nil
	}
	if len(args) < 2 {
		return model.SlotKey{}, nil, errInvalidSlot(args, errors.New("missing hour"))
	}
	d, err := model.ParseDay(args[0])
	if err != nil {
		return model.SlotKey{}, nil, errInvalidSlot(args[:2], err)
	}
	h, err := model.ParseHour(args[1])
	if err != nil {
		return model.SlotKey{}, nil, errInvalidSlot(args[:2], err)
	}
	return model.Slot(d, h), args[2:], nil
}

func parseOnlySlot(args []string) (model.SlotKey, error) {
	k, rest, err := parseSlotArgs(args)
	if err != nil {
		return model.SlotKey{}, err
	}
	if len(rest) != 0 {
		return model.SlotKey{}, fmt.Errorf("unexpected arguments: %q", rest)
	}
	return k, nil
}

func newBoardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Read and change the weekly board",
	}
	cmd.AddCommand(newBoardShowCmd(app))
	cmd.AddCommand(newBoardGetCmd(app))
	cmd.AddCommand(newBoardSetCmd(app))
	cmd.AddCommand(newBoardCycleCmd(app))
	cmd.AddCommand(newBoardStatusCmd(app))
	cmd.AddCommand(newBoardMoveCmd(app))
	return cmd
}

func newBoardShowCmd(app *App) *cobra.Command {
	var (
		day    string
		status string
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List tasks in grid order (by hour, then day)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				dayFilter    *model.Day
				statusFilter model.Status
			)
			if strings.TrimSpace(day) != "" {
				d, err := model.ParseDay(day)
				if err != nil {
					return writeErr(cmd, err)
				}
				dayFilter = &d
			}
			if strings.TrimSpace(status) != "" {
				st, err := statusutil.Normalize(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				statusFilter = st
			}

			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			b := sess.grid.Board()
			tasks := []taskJSON{}
			open := 0
			for _, k := range b.Keys() {
				t := b[k]
				if !statusutil.IsEndState(t.Status) {
					open++
				}
				if dayFilter != nil && k.Day != *dayFilter {
					continue
				}
				if statusFilter != "" && t.Status != statusFilter {
					continue
				}
				tasks = append(tasks, toTaskJSON(k, t))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"tasks": tasks},
				"meta": map[string]any{
					"dir":     sess.store.Dir,
					"backend": sess.store.ResolvedBackend(),
					"count":   len(tasks),
					"total":   len(b),
					"open":    open,
				},
			})
		},
	}
	cmd.Flags().StringVar(&day, "day", "", "Only show one day (Mon..Sun)")
	cmd.Flags().StringVar(&status, "status", "", "Only show one status (pending|completed|overdue)")
	return cmd
}

func newBoardGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <day> <hour>",
		Short: "Show the task in one slot",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseOnlySlot(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			t, ok := sess.grid.Task(slot)
			if !ok {
				return writeErr(cmd, errEmptySlot(slot))
			}
			return writeOut(cmd, app, map[string]any{"data": toTaskJSON(slot, t)})
		},
	}
}

func newBoardSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <day> <hour> <title...>",
		Short: "Put a new pending task in a slot (replaces any existing task)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, rest, err := parseSlotArgs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			title := strings.Join(rest, " ")
			if strings.TrimSpace(title) == "" {
				return writeErr(cmd, errors.New("title is empty"))
			}

			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			prev, replaced := sess.grid.Task(slot)
			sess.grid.OpenEntry(slot)
			err = sess.grid.CommitEntry(title)
			sess.grid.CloseEntry()
			if err != nil {
				return writeErr(cmd, err)
			}

			t, _ := sess.grid.Task(slot)
			out := map[string]any{"data": toTaskJSON(slot, t)}
			if replaced {
				out["meta"] = map[string]any{"replaced": toTaskJSON(slot, prev)}
			}
			return writeOut(cmd, app, out)
		},
	}
}

func newBoardCycleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cycle <day> <hour>",
		Short: "Advance a task's status: pending -> completed -> overdue -> pending",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseOnlySlot(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			if _, ok := sess.grid.Task(slot); !ok {
				return writeErr(cmd, errEmptySlot(slot))
			}
			if err := sess.grid.CycleStatus(slot); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := sess.grid.Task(slot)
			return writeOut(cmd, app, map[string]any{"data": toTaskJSON(slot, t)})
		},
	}
}

func newBoardStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <day> <hour> <status>",
		Short: "Cycle a task until it reaches the given status",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, rest, err := parseSlotArgs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(rest) != 1 {
				return writeErr(cmd, errors.New("missing status"))
			}
			want, err := statusutil.Normalize(rest[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			t, ok := sess.grid.Task(slot)
			if !ok {
				return writeErr(cmd, errEmptySlot(slot))
			}
			// The cycle has three states, so at most two steps are ever needed.
			for i := 0; i < 2 && t.Status != want; i++ {
				if err := sess.grid.CycleStatus(slot); err != nil {
					return writeErr(cmd, err)
				}
				t, _ = sess.grid.Task(slot)
			}
			return writeOut(cmd, app, map[string]any{"data": toTaskJSON(slot, t)})
		},
	}
}

func newBoardMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <day> <hour> <to-day> <to-hour>",
		Short: "Move a task to another slot (replaces any task already there)",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, rest, err := parseSlotArgs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			to, err := parseOnlySlot(rest)
			if err != nil {
				return writeErr(cmd, err)
			}

			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			if _, ok := sess.grid.Task(from); !ok {
				return writeErr(cmd, errEmptySlot(from))
			}
			prev, replaced := sess.grid.Task(to)
			if from == to {
				replaced = false
			}

			sess.grid.BeginDrag(from)
			if err := sess.grid.CompleteDrag(to); err != nil {
				return writeErr(cmd, err)
			}
			sess.grid.CancelDrag()

			t, _ := sess.grid.Task(to)
			out := map[string]any{
				"data": map[string]any{
					"from":  from.String(),
					"to":    to.String(),
					"moved": from != to,
					"task":  toTaskJSON(to, t),
				},
			}
			if replaced {
				out["meta"] = map[string]any{"replaced": toTaskJSON(to, prev)}
			}
			return writeOut(cmd, app, out)
		},
	}
}
