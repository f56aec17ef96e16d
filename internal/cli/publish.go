package cli

import (
	"fmt"
	"strings"

	"weekplan/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var (
		to        string
		title     string
		layout    string
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render the week as Markdown (to a file with --to, else stdout)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := publish.ParseLayout(layout)
			if err != nil {
				return writeErr(cmd, err)
			}
			sess, err := openBoard(commandContext(cmd), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			opts := publish.RenderOptions{Title: title, Layout: l}
			if strings.TrimSpace(to) == "" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), publish.RenderWeekMarkdown(sess.grid.Board(), opts))
				return err
			}
			res, err := publish.WriteWeek(sess.grid.Board(), to, publish.WriteOptions{RenderOptions: opts, Overwrite: overwrite})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "Output file (default: print to stdout)")
	cmd.Flags().StringVar(&title, "title", "", "Document title (default: Week plan)")
	cmd.Flags().StringVar(&layout, "layout", "agenda", "Layout (agenda|grid)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing output file")
	return cmd
}
