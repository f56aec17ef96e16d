package cli

import (
	"errors"

	"weekplan/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace board and config for problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			report := store.Doctor(commandContext(cmd), s)
			if err := writeOut(cmd, app, map[string]any{"data": report}); err != nil {
				return err
			}
			if report.HasErrors() {
				return writeErr(cmd, errors.New("doctor found errors"))
			}
			return nil
		},
	}
}
