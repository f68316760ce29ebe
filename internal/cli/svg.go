package cli

import (
	"os"
	"time"

	"ganttly/internal/svgexport"
	"ganttly/internal/timeline"

	"github.com/spf13/cobra"
)

func newSVGCmd(app *App) *cobra.Command {
	var out string
	var width int

	cmd := &cobra.Command{
		Use:   "svg",
		Short: "Export the timeline as a standalone SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			win := timeline.WindowFor(snap.Tasks, snap.Settings.ViewMode, time.Now())
			opts := svgexport.DefaultOptions()
			opts.Density = snap.Settings.Density
			if width > 0 {
				opts.Width = width
			}
			svg := svgexport.Render(snap.Tasks, win, opts)

			if out == "" {
				_, err := cmd.OutOrStdout().Write([]byte(svg))
				return err
			}
			if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"file":  out,
				"tasks": len(snap.Tasks),
				"days":  win.TotalDays,
			}})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVar(&width, "width", 0, "Canvas width in pixels (default 1200)")
	return cmd
}
