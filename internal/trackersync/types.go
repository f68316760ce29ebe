package trackersync

// Wire types for the tracker REST API. Field names follow the tracker's
// JSON; mapping to/from the local task model lives in sync.go.

type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

type Project struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"teamId"`
	State  string `json:"state"`
}

type Cycle struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	TeamID   string `json:"teamId"`
	StartsAt string `json:"startsAt"`
	EndsAt   string `json:"endsAt"`
}

type Issue struct {
	ID         string   `json:"id"`
	Identifier string   `json:"identifier"`
	Title      string   `json:"title"`
	State      string   `json:"state"`
	Priority   int      `json:"priority"`
	Progress   int      `json:"progress"`
	StartDate  string   `json:"startDate,omitempty"` // YYYY-MM-DD
	DueDate    string   `json:"dueDate,omitempty"`   // YYYY-MM-DD
	ParentID   string   `json:"parentId,omitempty"`
	ProjectID  string   `json:"projectId,omitempty"`
	Assignee   string   `json:"assignee,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	Estimate   *int     `json:"estimate,omitempty"`
	URL        string   `json:"url,omitempty"`
}

type IssueUpdate struct {
	Title     *string  `json:"title,omitempty"`
	State     *string  `json:"state,omitempty"`
	Priority  *int     `json:"priority,omitempty"`
	Progress  *int     `json:"progress,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	DueDate   *string  `json:"dueDate,omitempty"`
	ParentID  *string  `json:"parentId,omitempty"`
	Labels    []string `json:"labels,omitempty"`
	Estimate  *int     `json:"estimate,omitempty"`
}

type Comment struct {
	ID      string `json:"id"`
	IssueID string `json:"issueId"`
	Body    string `json:"body"`
	Author  string `json:"author"`
}

// Relation links two issues; Type "blocks" mirrors the local
// dependency edge (From must precede To).
type Relation struct {
	ID   string `json:"id"`
	From string `json:"fromIssueId"`
	To   string `json:"toIssueId"`
	Type string `json:"type"`
}
