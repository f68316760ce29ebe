package cli

import (
	"context"
	"errors"

	"ganttly/internal/config"
	"ganttly/internal/store"
	"ganttly/internal/trackersync"

	"github.com/spf13/cobra"
)

func newSyncCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Mirror tasks against the configured issue tracker",
	}
	cmd.AddCommand(newSyncPushCmd(app))
	cmd.AddCommand(newSyncPullCmd(app))
	cmd.AddCommand(newSyncStatusCmd(app))
	return cmd
}

func syncClient(ctx context.Context) (*trackersync.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	client, err := newTrackerClient(ctx, cfg)
	if err != nil {
		return nil, cfg, err
	}
	if client == nil {
		return nil, cfg, errors.New("no tracker configured (set tracker.baseUrl and a token in the config file)")
	}
	return client, cfg, nil
}

func newSyncPushCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Create/update remote issues for every task (per-task failures don't abort)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, _, err := syncClient(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Unlike the TUI, the CLI can show diagnostics directly.
			trackersync.Logger.SetOutput(cmd.ErrOrStderr())
			tasks, res := trackersync.PushAll(ctx, client, snap.Tasks)
			snap.Tasks = tasks
			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
	return cmd
}

func newSyncPullCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch remote issues and merge them over local state (remote wins for linked tasks)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, _, err := syncClient(ctx)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			trackersync.Logger.SetOutput(cmd.ErrOrStderr())
			tasks, err := trackersync.Pull(ctx, client, snap.Tasks)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap.Tasks = tasks
			store.Normalize(&snap)
			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": len(snap.Tasks)}})
		},
	}
	return cmd
}

func newSyncStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tracker linkage for the current store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			linked := 0
			for _, t := range snap.Tasks {
				if t.TrackerID != "" {
					linked++
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"configured": cfg.Tracker.BaseURL != "",
				"baseUrl":    cfg.Tracker.BaseURL,
				"teamId":     cfg.Tracker.TeamID,
				"tasks":      len(snap.Tasks),
				"linked":     linked,
				"unlinked":   len(snap.Tasks) - linked,
			}})
		},
	}
	return cmd
}
