package cli

import (
	"ganttly/internal/model"
	"ganttly/internal/mutate"
	"ganttly/internal/store"

	"github.com/spf13/cobra"
)

func newDepsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Dependency commands",
	}
	cmd.AddCommand(newDepsAddCmd(app))
	cmd.AddCommand(newDepsRemoveCmd(app))
	cmd.AddCommand(newDepsListCmd(app))
	return cmd
}

func newDepsAddCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "add <task-id>",
		Short: "Record that --on must precede the task (cycles are rejected)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.AddDependency(tasks, args[0], on)
			})
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Prerequisite task id (required)")
	_ = cmd.MarkFlagRequired("on")
	return cmd
}

func newDepsRemoveCmd(app *App) *cobra.Command {
	var on string

	cmd := &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove a dependency edge (absent edges are a no-op)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateAndSave(cmd, app, func(tasks []model.Task) (mutate.Result, error) {
				return mutate.RemoveDependency(tasks, args[0], on)
			})
		},
	}

	cmd.Flags().StringVar(&on, "on", "", "Prerequisite task id (required)")
	_ = cmd.MarkFlagRequired("on")
	return cmd
}

type depEdge struct {
	TaskID   string `json:"taskId"`
	PrereqID string `json:"prereqId"`
}

func newDepsListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [task-id]",
		Short: "List dependency edges (optionally for a single task)",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var filter string
			if len(args) == 1 {
				if _, ok := store.FindTask(snap.Tasks, args[0]); !ok {
					return writeErr(cmd, mutate.NotFoundError{Kind: "task", ID: args[0]})
				}
				filter = args[0]
			}

			out := make([]depEdge, 0)
			for _, t := range snap.Tasks {
				for _, dep := range t.Dependencies {
					if filter != "" && t.ID != filter && dep != filter {
						continue
					}
					out = append(out, depEdge{TaskID: t.ID, PrereqID: dep})
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}
