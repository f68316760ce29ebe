package model

import "time"

type Kind string

const (
	KindProject Kind = "project"
	KindIssue   Kind = "issue"
)

type Status string

const (
	StatusBacklog    Status = "backlog"
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
)

type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Task is a row on the timeline. Kind is decided once at creation:
// a project has no parent, an issue always has one.
type Task struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// ParentID is set iff Kind == KindIssue.
	ParentID *string `json:"parentId,omitempty"`

	// Start/End are calendar dates normalized to UTC midnight.
	// End >= Start; a zero-duration milestone has End == Start.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Progress int    `json:"progress"` // 0..100
	Color    string `json:"color,omitempty"`

	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`

	// Dependencies lists prerequisite task IDs (those tasks precede this one).
	Dependencies []string `json:"dependencies,omitempty"`

	Assignee *string  `json:"assignee,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Estimate *int     `json:"estimate,omitempty"`

	// Tracker linkage for tasks imported from / pushed to the external tracker.
	TrackerID  string `json:"trackerId,omitempty"`
	TrackerURL string `json:"trackerUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsMilestone reports whether the task is a zero-duration marker.
func (t Task) IsMilestone() bool {
	return t.End.Equal(t.Start)
}

// Day truncates to a calendar date (UTC midnight). All timeline math
// operates on Day-normalized times.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusDone, StatusCanceled:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
