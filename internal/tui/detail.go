package tui

import (
	"fmt"
	"strings"

	"ganttly/internal/model"
)

// viewDetailBody renders the selected task as markdown through glamour.
func (m appModel) viewDetailBody() string {
	if m.selected >= len(m.tasks) {
		return styleMuted().Render("No task selected.")
	}
	t := m.tasks[m.selected]

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", t.Name)
	fmt.Fprintf(&md, "- **Kind:** %s\n", t.Kind)
	fmt.Fprintf(&md, "- **Dates:** %s → %s", t.Start.Format("2006-01-02"), t.End.Format("2006-01-02"))
	if t.IsMilestone() {
		md.WriteString(" (milestone)")
	}
	md.WriteString("\n")
	fmt.Fprintf(&md, "- **Status:** %s\n", t.Status)
	fmt.Fprintf(&md, "- **Progress:** %d%%\n", t.Progress)
	if t.Priority != model.PriorityNone {
		fmt.Fprintf(&md, "- **Priority:** %s\n", t.Priority)
	}
	if t.Assignee != nil {
		fmt.Fprintf(&md, "- **Assignee:** %s\n", *t.Assignee)
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&md, "- **Labels:** %s\n", strings.Join(t.Labels, ", "))
	}
	if t.Estimate != nil {
		fmt.Fprintf(&md, "- **Estimate:** %d\n", *t.Estimate)
	}
	if t.ParentID != nil {
		if p, ok := findByID(m.tasks, *t.ParentID); ok {
			fmt.Fprintf(&md, "- **Parent:** %s\n", p.Name)
		}
	}
	if t.TrackerURL != "" {
		fmt.Fprintf(&md, "- **Tracker:** %s\n", t.TrackerURL)
	}

	if len(t.Dependencies) > 0 {
		md.WriteString("\n## Depends on\n\n")
		for _, depID := range t.Dependencies {
			if dep, ok := findByID(m.tasks, depID); ok {
				fmt.Fprintf(&md, "- %s (ends %s)\n", dep.Name, dep.End.Format("Jan 2"))
			}
		}
	}

	width := m.width - 4
	return padBody(renderMarkdown(md.String(), width), m.visibleRows()+1)
}

func findByID(tasks []model.Task, id string) (model.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}
