package tui

import (
	"ganttly/internal/config"
	"ganttly/internal/store"
	"ganttly/internal/trackersync"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI. client may be nil when no tracker is
// configured; sync keys and polling are disabled in that case.
func Run(dir string, snap store.Snapshot, cfg config.Config, client *trackersync.Client) error {
	applyColorProfilePreference()
	m := newAppModel(dir, snap, cfg, client)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
