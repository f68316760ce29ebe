package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ganttly/internal/config"
	"ganttly/internal/format"
	"ganttly/internal/store"
	"ganttly/internal/trackersync"
	"ganttly/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ganttly",
		Short:        "Gantt timeline + sprint board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive timeline
  ganttly

  # Scriptable commands
  ganttly tasks list

  # Reschedule from a script
  ganttly tasks set-dates t-20260301-101500 --start 2026-03-03 --end 2026-03-10
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("GANTTLY_DIR", ""), "Path to store dir (default: nearest .ganttly, else ./.ganttly)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("GANTTLY_FORMAT", "json"), "Output format (json|yaml)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDepsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newSVGCmd(app))
	cmd.AddCommand(newSyncCmd(app))
	cmd.AddCommand(newSettingsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	snap, _, err := loadSnapshot(app)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	client, err := newTrackerClient(context.Background(), cfg)
	if err != nil {
		return err
	}
	return tui.Run(app.Dir, snap, cfg, client)
}

// loadSnapshot resolves the store dir (flag > discovery > ./.ganttly),
// records it back on app, and loads the validated snapshot.
func loadSnapshot(app *App) (store.Snapshot, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Snapshot{}, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Snapshot{}, s, err
	}
	snap, err := s.Load(context.Background())
	if err != nil {
		return store.Snapshot{}, s, err
	}
	return snap, s, nil
}

// newTrackerClient returns nil (not an error) when no tracker is
// configured; sync features are simply unavailable then.
func newTrackerClient(ctx context.Context, cfg config.Config) (*trackersync.Client, error) {
	if cfg.Tracker.BaseURL == "" {
		return nil, nil
	}
	token, err := cfg.Tracker.ResolveToken()
	if err != nil {
		return nil, fmt.Errorf("resolve tracker token: %w", err)
	}
	if token == "" {
		return nil, nil
	}
	return trackersync.NewClient(ctx, cfg.Tracker.BaseURL, token, cfg.Tracker.TeamID), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
