package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ganttly/internal/format"
	"ganttly/internal/model"
	"ganttly/internal/store"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full snapshot (tasks + settings) as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, _, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if out == "" {
				return format.Write(cmd.OutOrStdout(), snap, app.Format, app.PrettyJSON)
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			if err := format.Write(f, snap, formatForPath(out, app.Format), true); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"file": out, "tasks": len(snap.Tasks)}})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout; extension picks the format)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a snapshot; data is validated and repaired on the way in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, s, err := loadSnapshot(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			var in store.Snapshot
			switch formatForPath(args[0], app.Format) {
			case "yaml", "yml":
				err = yaml.Unmarshal(b, &in)
			default:
				err = json.Unmarshal(b, &in)
			}
			if err != nil {
				return writeErr(cmd, fmt.Errorf("parse %s: %w", args[0], err))
			}

			if merge {
				in.Tasks = mergeTasks(snap.Tasks, in.Tasks)
				in.Settings = snap.Settings
			}
			store.Normalize(&in)
			if err := s.Save(context.Background(), in); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": len(in.Tasks)}})
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Merge over the existing snapshot by task id instead of replacing it")
	return cmd
}

// mergeTasks overlays imported tasks on the existing list by id;
// imported entries win, unknown ids append.
func mergeTasks(existing, imported []model.Task) []model.Task {
	idx := make(map[string]int, len(existing))
	out := append([]model.Task(nil), existing...)
	for i, t := range out {
		idx[t.ID] = i
	}
	for _, t := range imported {
		if i, ok := idx[t.ID]; ok {
			out[i] = t
		} else {
			out = append(out, t)
		}
	}
	return out
}

// formatForPath derives the wire format from the file extension, falling
// back to the --format flag.
func formatForPath(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	}
	return fallback
}
