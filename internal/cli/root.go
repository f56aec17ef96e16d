package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"weekplan/internal/format"
	"weekplan/internal/logging"
	"weekplan/internal/store"
	"weekplan/internal/tui"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const defaultWorkspace = "default"

type App struct {
	Dir        string
	Workspace  string
	Backend    string
	PrettyJSON bool
	Format     string

	format  format.Format
	backend store.Backend
	cfg     *store.GlobalConfig
	log     *log.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "weekplan",
		Short:        "Weekly planner: a Mon-Sun, 8:00-19:00 grid of hourly tasks",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive planner
  weekplan

  # Scriptable access to the same board
  weekplan board set Mon 9 Write report
  weekplan board cycle Mon 9
  weekplan board move Mon 9 Tue 10
  weekplan board show --pretty

  # Shortcut for: weekplan board get Mon-9
  weekplan Mon-9
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		app.log = logging.New(cmd.ErrOrStderr(), logging.DefaultOptions())

		f, err := format.Parse(app.Format)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.format = f

		b, err := store.ParseBackend(app.Backend)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.backend = b

		cfg, err := store.LoadConfig()
		if err != nil {
			// A broken config must not lock the user out of their board.
			app.log.Warn("ignoring unreadable config", "err", err)
			cfg = &store.GlobalConfig{}
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("WEEKPLAN_DIR", ""), "Path to the board directory (overrides workspace resolution)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("WEEKPLAN_WORKSPACE", ""), "Workspace name (default: current workspace from config, else 'default')")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("WEEKPLAN_BACKEND", ""), "Storage backend (sqlite|json)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WEEKPLAN_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newPublishCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	opts := tui.Options{Store: s, Workspace: app.Workspace}
	if app.cfg != nil && app.cfg.TUI != nil {
		opts.Theme = app.cfg.TUI.Theme
		opts.Glyphs = app.cfg.TUI.Glyphs
	}
	if err := tui.Run(commandContext(cmd), opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// resolveStore picks the board directory and backend.
//
// Directory: --dir, else the --workspace, config currentWorkspace or "default" workspace.
// Backend: --backend (or WEEKPLAN_BACKEND), else config "backend", else auto-detect.
func resolveStore(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		name := strings.TrimSpace(app.Workspace)
		if name == "" && app.cfg != nil {
			name = strings.TrimSpace(app.cfg.CurrentWorkspace)
		}
		if name == "" {
			name = defaultWorkspace
		}
		d, err := store.WorkspaceDir(name)
		if err != nil {
			return store.Store{}, err
		}
		app.Workspace = name
		app.Dir = d
		dir = d
	}

	backend := app.backend
	if backend == "" && app.cfg != nil {
		b, err := store.ParseBackend(app.cfg.Backend)
		if err != nil {
			return store.Store{}, fmt.Errorf("config: %w", err)
		}
		backend = b
	}
	return store.Store{Dir: dir, Backend: backend}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
