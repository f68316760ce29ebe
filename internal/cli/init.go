package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"sqlitePath": filepath.Join(app.Dir, "state.sqlite"),
					"tasks":      len(snap.Tasks),
				},
			})
		},
	}
	return cmd
}
