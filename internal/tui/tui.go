package tui

import (
	"context"
	"errors"
	"fmt"

	"weekplan/internal/logging"
	"weekplan/internal/planner"
	"weekplan/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Options struct {
	Store     store.Store
	Workspace string

	// Theme and Glyphs come from config.json; env vars still win.
	Theme  string
	Glyphs string

	// Logger defaults to logging.OpenTUI.
	Logger *log.Logger
}

// Run loads the board once, then runs the planner until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) (err error) {
	logger := opts.Logger
	if logger == nil {
		l, closeLog, lerr := logging.OpenTUI()
		if lerr != nil {
			return lerr
		}
		defer func() { err = errors.Join(err, closeLog()) }()
		logger = l
	}

	kv, err := opts.Store.Open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { err = errors.Join(err, kv.Close()) }()

	bs := store.NewBoardStore(kv, logger)
	board, err := bs.LoadBoard(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}
	logger.Info("board loaded", "dir", opts.Store.Dir, "backend", opts.Store.ResolvedBackend(), "tasks", len(board))

	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	grid := planner.New(board, planner.WithSaver(bs), planner.WithLogger(logger))
	m := newAppModel(grid, opts.Workspace, logger)

	_, err = tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
