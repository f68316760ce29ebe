package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"ganttly/internal/model"
	"ganttly/internal/mutate"
	"ganttly/internal/store"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksRenameCmd(app))
	cmd.AddCommand(newTasksSetDatesCmd(app))
	cmd.AddCommand(newTasksSetProgressCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksSetPriorityCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var status string
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := make([]model.Task, 0, len(snap.Tasks))
			for _, t := range snap.Tasks {
				if status != "" && string(t.Status) != status {
					continue
				}
				if kind != "" && string(t.Kind) != kind {
					continue
				}
				out = append(out, t)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (backlog|todo|in_progress|done|canceled)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind (project|issue)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := store.FindTask(snap.Tasks, args[0])
			if !ok {
				return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var name string
	var startStr, endStr string
	var parent string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task (a project, or an issue when --parent is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			start, end, err := parseSpan(startStr, endStr)
			if err != nil {
				return writeErr(cmd, err)
			}

			var parentID *string
			if parent != "" {
				parentID = &parent
			}
			tasks, created, err := mutate.Create(snap.Tasks, name, start, end, parentID)
			if err != nil {
				return writeErr(cmd, err)
			}
			snap.Tasks = tasks
			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&startStr, "start", "", "Start date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&endStr, "end", "", "End date YYYY-MM-DD (default: start+7d)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent task id (makes this an issue)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksRenameCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "rename <task-id>",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.Rename(tasks, args[0], name)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name (required)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksSetDatesCmd(app *App) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "set-dates <task-id>",
		Short: "Reschedule a task (non-milestones keep a 1-day minimum span)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(dateLayout, startStr)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid --start: %w", err))
			}
			end, err := time.Parse(dateLayout, endStr)
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid --end: %w", err))
			}
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.SetDates(tasks, args[0], start, end)
			})
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endStr, "end", "", "End date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newTasksSetProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-progress <task-id> <percent>",
		Short: "Set progress (clamped to 0..100)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pct, err := strconv.Atoi(args[1])
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid percent %q: %w", args[1], err))
			}
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.SetProgress(tasks, args[0], pct)
			})
		},
	}
	return cmd
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "set-status <task-id>",
		Short: "Set status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.SetStatus(tasks, args[0], model.Status(status))
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Status (backlog|todo|in_progress|done|canceled)")
	_ = cmd.MarkFlagRequired("status")
	return cmd
}

func newTasksSetPriorityCmd(app *App) *cobra.Command {
	var priority string

	cmd := &cobra.Command{
		Use:   "set-priority <task-id>",
		Short: "Set priority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.SetPriority(tasks, args[0], model.Priority(priority))
			})
		},
	}

	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityNone), "Priority (none|urgent|high|medium|low)")
	return cmd
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Reparent a task (empty --parent promotes it to a project)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.Move(tasks, args[0], parent)
			})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent task id (empty promotes to project)")
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task and all of its descendants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, res, err := mutate.Delete(snap.Tasks, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			snap.Tasks = tasks
			if err := s.Save(context.Background(), snap); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.EventPayload})
		},
	}
	return cmd
}

// mutateAndSave runs one edit over the loaded snapshot and persists it.
// The mutated task is echoed back in the output envelope.
func mutateAndSave(cmd *cobra.Command, app *App, fn func([]model.Task) (mutate.Result, error)) error {
	snap, s, err := loadSnapshot(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := fn(snap.Tasks)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := s.Save(context.Background(), snap); err != nil {
			return writeErr(cmd, err)
		}
	}
	return writeOut(cmd, app, map[string]any{"data": res.Task, "changed": res.Changed})
}

// parseSpan fills in create defaults: today, and a one-week span.
func parseSpan(startStr, endStr string) (time.Time, time.Time, error) {
	start := model.Day(time.Now().UTC())
	if startStr != "" {
		d, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
		}
		start = d
	}
	end := start.AddDate(0, 0, 7)
	if endStr != "" {
		d, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
		}
		end = d
	}
	return start, end, nil
}
