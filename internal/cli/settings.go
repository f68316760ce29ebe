package cli

import (
	"context"
	"fmt"

	"ganttly/internal/model"

	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Workspace settings (view mode, density, history limit)",
	}
	cmd.AddCommand(newSettingsShowCmd(app))
	cmd.AddCommand(newSettingsSetCmd(app))
	return cmd
}

func newSettingsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": snap.Settings})
		},
	}
	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var viewMode string
	var density string
	var historyLimit int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update settings (only the given flags change)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if viewMode != "" {
				vm := model.ViewMode(viewMode)
				if !model.ValidViewMode(vm) {
					return writeErr(cmd, fmt.Errorf("invalid view mode %q (day|week|month)", viewMode))
				}
				snap.Settings.ViewMode = vm
			}
			if density != "" {
				d := model.Density(density)
				if !model.ValidDensity(d) {
					return writeErr(cmd, fmt.Errorf("invalid density %q (compact|default|comfortable)", density))
				}
				snap.Settings.Density = d
			}
			if historyLimit > 0 {
				snap.Settings.HistoryLimit = historyLimit
			}

			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": snap.Settings})
		},
	}

	cmd.Flags().StringVar(&viewMode, "view-mode", "", "Timeline zoom (day|week|month)")
	cmd.Flags().StringVar(&density, "density", "", "Row density (compact|default|comfortable)")
	cmd.Flags().IntVar(&historyLimit, "history-limit", 0, "Max undo entries kept in memory")
	return cmd
}
