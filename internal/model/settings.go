package model

// ViewMode selects the timeline zoom level. It only affects how the
// visible window is derived; it is never persisted alongside tasks.
type ViewMode string

const (
	ViewModeDay   ViewMode = "day"
	ViewModeWeek  ViewMode = "week"
	ViewModeMonth ViewMode = "month"
)

// Density selects row height on the timeline and board.
type Density string

const (
	DensityCompact     Density = "compact"
	DensityDefault     Density = "default"
	DensityComfortable Density = "comfortable"
)

type Settings struct {
	ViewMode ViewMode `json:"viewMode" yaml:"viewMode"`
	Density  Density  `json:"density" yaml:"density"`

	// HistoryLimit bounds the undo stack (entries, not bytes).
	HistoryLimit int `json:"historyLimit" yaml:"historyLimit"`
}

func DefaultSettings() Settings {
	return Settings{
		ViewMode:     ViewModeWeek,
		Density:      DensityDefault,
		HistoryLimit: 50,
	}
}

func ValidViewMode(v ViewMode) bool {
	switch v {
	case ViewModeDay, ViewModeWeek, ViewModeMonth:
		return true
	}
	return false
}

func ValidDensity(d Density) bool {
	switch d {
	case DensityCompact, DensityDefault, DensityComfortable:
		return true
	}
	return false
}
