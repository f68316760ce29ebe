package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: ganttly %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data to be an object; got: %#v", env["data"])
	}
	return m
}

func TestTasksLifecycle(t *testing.T) {
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "init")

	created := mustRun(t, "--dir", dir, "tasks", "create",
		"--name", "Website relaunch", "--start", "2026-03-02", "--end", "2026-03-20")
	id, _ := dataMap(t, created)["id"].(string)
	if id == "" {
		t.Fatalf("expected tasks create to return an id; got: %#v", created["data"])
	}
	if kind := dataMap(t, created)["kind"]; kind != "project" {
		t.Fatalf("parentless create must yield a project; got: %v", kind)
	}

	child := mustRun(t, "--dir", dir, "tasks", "create",
		"--name", "Landing page", "--start", "2026-03-02", "--end", "2026-03-06", "--parent", id)
	childID, _ := dataMap(t, child)["id"].(string)
	if kind := dataMap(t, child)["kind"]; kind != "issue" {
		t.Fatalf("create with --parent must yield an issue; got: %v", kind)
	}

	listed := mustRun(t, "--dir", dir, "tasks", "list")
	if xs, ok := listed["data"].([]any); !ok || len(xs) != 2 {
		t.Fatalf("expected 2 tasks; got: %#v", listed["data"])
	}

	mustRun(t, "--dir", dir, "tasks", "set-dates", childID, "--start", "2026-03-03", "--end", "2026-03-09")
	mustRun(t, "--dir", dir, "tasks", "set-status", childID, "--status", "in_progress")

	// Clamp, not error.
	prog := mustRun(t, "--dir", dir, "tasks", "set-progress", childID, "150")
	if p := dataMap(t, prog)["progress"]; p != float64(100) {
		t.Fatalf("expected progress clamped to 100; got: %v", p)
	}

	shown := mustRun(t, "--dir", dir, "tasks", "show", childID)
	if got := dataMap(t, shown)["status"]; got != "in_progress" {
		t.Fatalf("expected status persisted; got: %v", got)
	}

	// Deleting the project cascades to the child.
	mustRun(t, "--dir", dir, "tasks", "delete", id)
	listed = mustRun(t, "--dir", dir, "tasks", "list")
	if xs, ok := listed["data"].([]any); !ok || len(xs) != 0 {
		t.Fatalf("expected delete to cascade; got: %#v", listed["data"])
	}
}

func TestSetDatesRejectsZeroSpan(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	created := mustRun(t, "--dir", dir, "tasks", "create",
		"--name", "A", "--start", "2026-03-02", "--end", "2026-03-09")
	id, _ := dataMap(t, created)["id"].(string)

	_, stderr, err := runCLI(t, []string{"--dir", dir, "tasks", "set-dates", id,
		"--start", "2026-03-05", "--end", "2026-03-05"})
	if err == nil {
		t.Fatalf("expected 1-day minimum span rejection")
	}
	if len(stderr) == 0 {
		t.Fatalf("expected error on stderr")
	}

	// Unchanged on disk.
	shown := mustRun(t, "--dir", dir, "tasks", "show", id)
	if got := dataMap(t, shown)["start"]; got != "2026-03-02T00:00:00Z" {
		t.Fatalf("rejected reschedule must not persist; got start: %v", got)
	}
}

func TestDepsCycleRejected(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	a := mustRun(t, "--dir", dir, "tasks", "create", "--name", "A", "--start", "2026-03-02", "--end", "2026-03-05")
	aID, _ := dataMap(t, a)["id"].(string)
	b := mustRun(t, "--dir", dir, "tasks", "create", "--name", "B", "--start", "2026-03-05", "--end", "2026-03-09")
	bID, _ := dataMap(t, b)["id"].(string)

	mustRun(t, "--dir", dir, "deps", "add", bID, "--on", aID)

	if _, _, err := runCLI(t, []string{"--dir", dir, "deps", "add", aID, "--on", bID}); err == nil {
		t.Fatalf("expected cycle rejection")
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "deps", "add", bID, "--on", aID}); err == nil {
		t.Fatalf("expected duplicate edge rejection")
	}

	edges := mustRun(t, "--dir", dir, "deps", "list")
	if xs, ok := edges["data"].([]any); !ok || len(xs) != 1 {
		t.Fatalf("expected exactly one edge; got: %#v", edges["data"])
	}

	mustRun(t, "--dir", dir, "deps", "remove", bID, "--on", aID)
	edges = mustRun(t, "--dir", dir, "deps", "list")
	if xs, ok := edges["data"].([]any); !ok || len(xs) != 0 {
		t.Fatalf("expected edge removed; got: %#v", edges["data"])
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")
	mustRun(t, "--dir", dir, "tasks", "create", "--name", "Keep me", "--start", "2026-03-02", "--end", "2026-03-09")

	file := filepath.Join(t.TempDir(), "snapshot.yaml")
	mustRun(t, "--dir", dir, "export", "-o", file)

	// Import into a fresh store.
	dir2 := t.TempDir()
	mustRun(t, "--dir", dir2, "init")
	mustRun(t, "--dir", dir2, "import", file)

	listed := mustRun(t, "--dir", dir2, "tasks", "list")
	xs, ok := listed["data"].([]any)
	if !ok || len(xs) != 1 {
		t.Fatalf("expected imported task; got: %#v", listed["data"])
	}
	if name := xs[0].(map[string]any)["name"]; name != "Keep me" {
		t.Fatalf("expected task name to survive the round trip; got: %v", name)
	}
}

func TestSettingsSet(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")

	set := mustRun(t, "--dir", dir, "settings", "set", "--view-mode", "month", "--density", "compact")
	if vm := dataMap(t, set)["viewMode"]; vm != "month" {
		t.Fatalf("expected viewMode month; got: %v", vm)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "settings", "set", "--view-mode", "year"}); err == nil {
		t.Fatalf("expected invalid view mode rejection")
	}

	shown := mustRun(t, "--dir", dir, "settings", "show")
	if d := dataMap(t, shown)["density"]; d != "compact" {
		t.Fatalf("expected density persisted; got: %v", d)
	}
}

func TestSVGExport(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, "--dir", dir, "init")
	mustRun(t, "--dir", dir, "tasks", "create", "--name", "Drawn", "--start", "2026-03-02", "--end", "2026-03-09")

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "svg"})
	if err != nil {
		t.Fatalf("svg export failed: %v\nstderr: %s", err, stderr)
	}
	if !bytes.Contains(stdout, []byte("<svg")) || !bytes.Contains(stdout, []byte("Drawn")) {
		t.Fatalf("expected an SVG document with the task label; got:\n%s", stdout)
	}
}
