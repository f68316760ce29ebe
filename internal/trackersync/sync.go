package trackersync

import (
	"context"
	"io"
	"log"
	"time"

	"ganttly/internal/model"
)

const dateLayout = "2006-01-02"

// Logger carries per-task sync diagnostics. Discarded by default: the
// TUI owns the terminal in alt-screen mode and surfaces failures through
// its own notification line, while the CLI points this at stderr.
var Logger = log.New(io.Discard, "trackersync: ", 0)

// Tracker priority codes, matching the API's 0..4 scale.
var priorityToCode = map[model.Priority]int{
	model.PriorityNone:   0,
	model.PriorityUrgent: 1,
	model.PriorityHigh:   2,
	model.PriorityMedium: 3,
	model.PriorityLow:    4,
}

var codeToPriority = map[int]model.Priority{
	0: model.PriorityNone,
	1: model.PriorityUrgent,
	2: model.PriorityHigh,
	3: model.PriorityMedium,
	4: model.PriorityLow,
}

var statusToState = map[model.Status]string{
	model.StatusBacklog:    "backlog",
	model.StatusTodo:       "unstarted",
	model.StatusInProgress: "started",
	model.StatusDone:       "completed",
	model.StatusCanceled:   "canceled",
}

var stateToStatus = map[string]model.Status{
	"backlog":   model.StatusBacklog,
	"unstarted": model.StatusTodo,
	"started":   model.StatusInProgress,
	"completed": model.StatusDone,
	"canceled":  model.StatusCanceled,
}

// PushResult reports what a best-effort push accomplished; failures are
// carried as values, not returned as an error, so one bad issue never
// aborts the batch.
type PushResult struct {
	Created int
	Updated int
	Failed  []string
}

// PushTask creates or updates the remote issue for one task and returns
// the (possibly updated) tracker linkage. Used after each local edit.
func PushTask(ctx context.Context, c *Client, t model.Task) (trackerID, trackerURL string, err error) {
	if t.TrackerID == "" {
		is, err := c.CreateIssue(ctx, issueFromTask(t))
		if err != nil {
			return "", "", err
		}
		return is.ID, is.URL, nil
	}
	up := updateFromTask(t)
	is, err := c.UpdateIssue(ctx, t.TrackerID, up)
	if err != nil {
		return t.TrackerID, t.TrackerURL, err
	}
	if is.URL != "" {
		return t.TrackerID, is.URL, nil
	}
	return t.TrackerID, t.TrackerURL, nil
}

// PushAll pushes every linked-or-new task. Per-task failures are logged
// and collected; local state is never touched on failure.
func PushAll(ctx context.Context, c *Client, tasks []model.Task) ([]model.Task, PushResult) {
	out := append([]model.Task(nil), tasks...)
	var res PushResult
	for i := range out {
		created := out[i].TrackerID == ""
		id, u, err := PushTask(ctx, c, out[i])
		if err != nil {
			Logger.Printf("push %s: %v", out[i].ID, err)
			res.Failed = append(res.Failed, out[i].ID)
			continue
		}
		out[i].TrackerID = id
		out[i].TrackerURL = u
		if created {
			res.Created++
		} else {
			res.Updated++
		}
	}
	return out, res
}

// Pull fetches remote issues and relations and merges them over the
// local list. Remote wins for every linked task (last-write-wins, no
// conflict resolution); remote issues with no local counterpart are
// imported; local tasks that were never pushed are kept as-is.
//
// Callers must treat the result as an externally sourced replacement:
// the undo history is cleared, not reconciled.
func Pull(ctx context.Context, c *Client, local []model.Task) ([]model.Task, error) {
	issues, err := c.Issues(ctx)
	if err != nil {
		return nil, err
	}
	relations, err := c.Relations(ctx)
	if err != nil {
		// Relations are additive; issues alone are still worth merging.
		Logger.Printf("relations fetch failed: %v", err)
		relations = nil
	}

	localByTracker := map[string]int{}
	for i, t := range local {
		if t.TrackerID != "" {
			localByTracker[t.TrackerID] = i
		}
	}

	out := append([]model.Task(nil), local...)
	taskIDByTracker := map[string]string{}

	for _, is := range issues {
		if i, ok := localByTracker[is.ID]; ok {
			out[i] = mergeIssue(out[i], is)
			taskIDByTracker[is.ID] = out[i].ID
			continue
		}
		t := taskFromIssue(is)
		out = append(out, t)
		taskIDByTracker[is.ID] = t.ID
	}

	// Map parent and dependency linkage through tracker ids.
	for i := range out {
		if out[i].TrackerID == "" {
			continue
		}
		for _, is := range issues {
			if is.ID != out[i].TrackerID {
				continue
			}
			if is.ParentID != "" {
				if pid, ok := taskIDByTracker[is.ParentID]; ok {
					p := pid
					out[i].ParentID = &p
					out[i].Kind = model.KindIssue
				}
			}
			break
		}
	}
	for _, rel := range relations {
		if rel.Type != "blocks" {
			continue
		}
		toID, ok1 := taskIDByTracker[rel.To]
		fromID, ok2 := taskIDByTracker[rel.From]
		if !ok1 || !ok2 {
			continue
		}
		for i := range out {
			if out[i].ID != toID {
				continue
			}
			if !containsString(out[i].Dependencies, fromID) {
				out[i].Dependencies = append(out[i].Dependencies, fromID)
			}
			break
		}
	}

	return out, nil
}

func issueFromTask(t model.Task) Issue {
	return Issue{
		Title:     t.Name,
		State:     statusToState[t.Status],
		Priority:  priorityToCode[t.Priority],
		Progress:  t.Progress,
		StartDate: t.Start.Format(dateLayout),
		DueDate:   t.End.Format(dateLayout),
		Labels:    t.Labels,
		Estimate:  t.Estimate,
	}
}

func updateFromTask(t model.Task) IssueUpdate {
	title := t.Name
	state := statusToState[t.Status]
	prio := priorityToCode[t.Priority]
	progress := t.Progress
	start := t.Start.Format(dateLayout)
	due := t.End.Format(dateLayout)
	return IssueUpdate{
		Title:     &title,
		State:     &state,
		Priority:  &prio,
		Progress:  &progress,
		StartDate: &start,
		DueDate:   &due,
		Labels:    t.Labels,
		Estimate:  t.Estimate,
	}
}

// mergeIssue applies remote fields over a linked local task, keeping
// purely local fields (color, dependencies resolved separately).
func mergeIssue(t model.Task, is Issue) model.Task {
	t.Name = is.Title
	if st, ok := stateToStatus[is.State]; ok {
		t.Status = st
	}
	if p, ok := codeToPriority[is.Priority]; ok {
		t.Priority = p
	}
	t.Progress = clampProgress(is.Progress)
	if d, err := time.Parse(dateLayout, is.StartDate); err == nil {
		t.Start = d
	}
	if d, err := time.Parse(dateLayout, is.DueDate); err == nil {
		t.End = d
	}
	if t.End.Before(t.Start) {
		t.End = t.Start
	}
	if is.Assignee != "" {
		a := is.Assignee
		t.Assignee = &a
	}
	if is.Labels != nil {
		t.Labels = is.Labels
	}
	if is.Estimate != nil {
		t.Estimate = is.Estimate
	}
	if is.URL != "" {
		t.TrackerURL = is.URL
	}
	t.UpdatedAt = time.Now().UTC()
	return t
}

func taskFromIssue(is Issue) model.Task {
	now := time.Now().UTC()
	t := model.Task{
		ID:         "trk-" + is.Identifier,
		Kind:       model.KindProject,
		Name:       is.Title,
		Status:     model.StatusBacklog,
		Priority:   model.PriorityNone,
		TrackerID:  is.ID,
		TrackerURL: is.URL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if is.Identifier == "" {
		t.ID = "trk-" + is.ID
	}
	if st, ok := stateToStatus[is.State]; ok {
		t.Status = st
	}
	if p, ok := codeToPriority[is.Priority]; ok {
		t.Priority = p
	}
	t.Progress = clampProgress(is.Progress)
	if d, err := time.Parse(dateLayout, is.StartDate); err == nil {
		t.Start = d
	} else {
		t.Start = model.Day(now)
	}
	if d, err := time.Parse(dateLayout, is.DueDate); err == nil {
		t.End = d
	} else {
		t.End = t.Start
	}
	if t.End.Before(t.Start) {
		t.End = t.Start
	}
	if is.Assignee != "" {
		a := is.Assignee
		t.Assignee = &a
	}
	t.Labels = is.Labels
	t.Estimate = is.Estimate
	return t
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func containsString(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
