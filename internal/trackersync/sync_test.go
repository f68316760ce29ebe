package trackersync

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ganttly/internal/model"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newTestServer(t *testing.T, issues []Issue, relations []Relation) (*httptest.Server, *[]string) {
	t.Helper()
	var authSeen []string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /issues", func(w http.ResponseWriter, r *http.Request) {
		authSeen = append(authSeen, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(issues)
	})
	mux.HandleFunc("GET /relations", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(relations)
	})
	mux.HandleFunc("POST /issues", func(w http.ResponseWriter, r *http.Request) {
		var in Issue
		_ = json.NewDecoder(r.Body).Decode(&in)
		in.ID = "remote-new"
		in.Identifier = "T-99"
		in.URL = "https://tracker.example.com/T-99"
		_ = json.NewEncoder(w).Encode(in)
	})
	mux.HandleFunc("PATCH /issues/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "broken" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(Issue{ID: r.PathValue("id")})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &authSeen
}

func TestPullMergesAndImports(t *testing.T) {
	issues := []Issue{
		{ID: "r1", Identifier: "T-1", Title: "Renamed remotely", State: "started", Priority: 2,
			Progress: 60, StartDate: "2026-01-03", DueDate: "2026-01-09"},
		{ID: "r2", Identifier: "T-2", Title: "Imported", State: "unstarted",
			StartDate: "2026-01-05", DueDate: "2026-01-07"},
	}
	relations := []Relation{{ID: "rel1", From: "r1", To: "r2", Type: "blocks"}}
	srv, _ := newTestServer(t, issues, relations)

	local := []model.Task{
		{ID: "a", Name: "Local name", TrackerID: "r1", Start: day(0), End: day(5), Status: model.StatusTodo},
		{ID: "b", Name: "Never pushed", Start: day(0), End: day(1)},
	}

	c := NewClient(context.Background(), srv.URL, "tok", "")
	out, err := Pull(context.Background(), c, local)
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 tasks (2 local + 1 import); got %d", len(out))
	}

	// Remote wins for the linked task.
	a := out[0]
	if a.Name != "Renamed remotely" || a.Status != model.StatusInProgress || a.Priority != model.PriorityHigh {
		t.Fatalf("remote fields not merged: %+v", a)
	}
	if !a.Start.Equal(day(2)) || !a.End.Equal(day(8)) {
		t.Fatalf("remote dates not merged: %v..%v", a.Start, a.End)
	}

	// Unlinked local task untouched.
	if out[1].Name != "Never pushed" {
		t.Fatalf("unlinked task modified: %+v", out[1])
	}

	// Imported task got the blocks relation as a dependency.
	imp := out[2]
	if imp.TrackerID != "r2" || imp.ID != "trk-T-2" {
		t.Fatalf("unexpected import: %+v", imp)
	}
	if len(imp.Dependencies) != 1 || imp.Dependencies[0] != "a" {
		t.Fatalf("expected dependency on a via relation; got %v", imp.Dependencies)
	}
}

func TestPushAllCollectsFailures(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	c := NewClient(context.Background(), srv.URL, "tok", "")

	// One create, one update, one server-side failure.
	tasks := []model.Task{
		{ID: "new", Name: "New", Start: day(0), End: day(2)},
		{ID: "ok", Name: "Ok", TrackerID: "r1", Start: day(0), End: day(2)},
		{ID: "bad", Name: "Bad", TrackerID: "broken", Start: day(0), End: day(2)},
	}
	out, res := PushAll(context.Background(), c, tasks)
	if res.Created != 1 || res.Updated != 1 || len(res.Failed) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if out[0].TrackerID != "remote-new" || out[0].TrackerURL == "" {
		t.Fatalf("create linkage not recorded: %+v", out[0])
	}
	// The failed task keeps its local state untouched.
	if out[2].TrackerID != "broken" {
		t.Fatalf("failed push mutated task: %+v", out[2])
	}
}

func TestPushDiagnosticsDiscardedUnlessConfigured(t *testing.T) {
	if Logger.Writer() != io.Discard {
		t.Fatalf("diagnostics must default to discard; got %T", Logger.Writer())
	}

	srv, _ := newTestServer(t, nil, nil)
	c := NewClient(context.Background(), srv.URL, "tok", "")

	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	t.Cleanup(func() { Logger.SetOutput(io.Discard) })

	_, res := PushAll(context.Background(), c, []model.Task{
		{ID: "bad", Name: "Bad", TrackerID: "broken", Start: day(0), End: day(2)},
	})
	if len(res.Failed) != 1 {
		t.Fatalf("expected one failure; got %+v", res)
	}
	if !strings.Contains(buf.String(), "push bad") {
		t.Fatalf("expected failure diagnostic on the configured writer; got %q", buf.String())
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	srv, auth := newTestServer(t, nil, nil)
	c := NewClient(context.Background(), srv.URL, "secret-token", "")
	if _, err := c.Issues(context.Background()); err != nil {
		t.Fatalf("issues: %v", err)
	}
	if len(*auth) == 0 || (*auth)[0] != "Bearer secret-token" {
		t.Fatalf("expected bearer auth; got %v", *auth)
	}
}

func TestAPIErrorSurfacesStatus(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)
	c := NewClient(context.Background(), srv.URL, "tok", "")
	_, err := c.UpdateIssue(context.Background(), "broken", IssueUpdate{})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError; got %T %v", err, err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500; got %d", apiErr.Status)
	}
}
