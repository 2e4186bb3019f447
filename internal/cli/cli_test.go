package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testEnv struct {
	config string
	db     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		config: filepath.Join(dir, "config.yaml"),
		db:     filepath.Join(dir, "data", "board.db"),
	}
}

// run executes the root command with args and returns stdout.
func (te testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd(&stdout, &stderr)
	cmd.SetArgs(append([]string{"--config", te.config, "--db", te.db}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func (te testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := te.run(t, args...)
	if err != nil {
		t.Fatalf("taskboard %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func (te testEnv) addList(t *testing.T, title string) string {
	t.Helper()
	var l struct {
		ID string `json:"id"`
	}
	out := te.mustRun(t, "--json", "list", "add", title)
	if err := json.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("decoding list: %v\n%s", err, out)
	}
	return l.ID
}

func (te testEnv) addCard(t *testing.T, listID, title string, extra ...string) string {
	t.Helper()
	var c cardRow
	args := append([]string{"--json", "card", "add", listID, title}, extra...)
	out := te.mustRun(t, args...)
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("decoding card: %v\n%s", err, out)
	}
	return c.ID
}

func TestDueCommand(t *testing.T) {
	te := newTestEnv(t)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"yesterday", []string{"2024-01-09"}, []string{"OVERDUE", "1 day late"}},
		{"today", []string{"2024-01-10"}, []string{"DUE_SOON", "due today"}},
		{"two days", []string{"2024-01-12"}, []string{"DUE_SOON", "due in 2 days"}},
		{"three days", []string{"2024-01-13"}, []string{"FUTURE", "due in 3 days"}},
		{"done", []string{"2024-01-09", "--done"}, []string{"COMPLETED"}},
		{"no date", nil, []string{"UNSET"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"due", "--today", "2024-01-10"}, tt.args...)
			out := te.mustRun(t, args...)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
		})
	}
}

func TestDueCommandJSON(t *testing.T) {
	te := newTestEnv(t)
	out := te.mustRun(t, "--json", "due", "--today", "2024-01-10", "2024-01-13")

	var got struct {
		Category  string `json:"category"`
		DaysUntil *int   `json:"days_until"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decoding: %v\n%s", err, out)
	}
	if got.Category != "FUTURE" {
		t.Errorf("category = %q, want FUTURE", got.Category)
	}
	if got.DaysUntil == nil || *got.DaysUntil != 3 {
		t.Errorf("days_until = %v, want 3", got.DaysUntil)
	}
}

func TestListAndCardAdd(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	cardID := te.addCard(t, listID, "Write docs", "--due", "2024-01-12", "--description", "user guide")

	var lists []listRow
	out := te.mustRun(t, "--json", "board")
	if err := json.Unmarshal([]byte(out), &lists); err != nil {
		t.Fatalf("decoding board: %v\n%s", err, out)
	}
	if len(lists) != 1 || lists[0].Title != "To Do" {
		t.Fatalf("lists = %+v", lists)
	}
	if len(lists[0].Cards) != 1 || lists[0].Cards[0].ID != cardID {
		t.Fatalf("cards = %+v", lists[0].Cards)
	}
	if lists[0].Cards[0].DueDate != "2024-01-12" {
		t.Errorf("due = %q", lists[0].Cards[0].DueDate)
	}

	text := te.mustRun(t, "board")
	if !strings.Contains(text, "To Do") || !strings.Contains(text, "Write docs") {
		t.Errorf("board output missing list or card:\n%s", text)
	}
}

func TestCardAddRejectsBadDate(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	if _, err := te.run(t, "card", "add", listID, "Broken", "--due", "12/01/2024"); err == nil {
		t.Fatal("expected an error for a malformed due date")
	}
}

func TestCardDone(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	cardID := te.addCard(t, listID, "Ship", "--due", "2000-01-01")

	te.mustRun(t, "card", "done", cardID)

	var lists []listRow
	if err := json.Unmarshal([]byte(te.mustRun(t, "--json", "board")), &lists); err != nil {
		t.Fatal(err)
	}
	c := lists[0].Cards[0]
	if !c.Done || c.DueCategory.String() != "COMPLETED" {
		t.Errorf("card = %+v, want done and COMPLETED", c)
	}
}

type checklistOut struct {
	Found   bool `json:"found"`
	Applied bool `json:"applied"`
	Done    int  `json:"done"`
	Total   int  `json:"total"`
	Percent int  `json:"percent"`
	Items   []struct {
		Text string `json:"text"`
		Done bool   `json:"done"`
	} `json:"items"`
}

func (te testEnv) checklist(t *testing.T, args ...string) checklistOut {
	t.Helper()
	var v checklistOut
	out := te.mustRun(t, append([]string{"--json", "checklist"}, args...)...)
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("decoding checklist: %v\n%s", err, out)
	}
	return v
}

func TestChecklistCommands(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	cardID := te.addCard(t, listID, "Release")

	te.checklist(t, "add", listID, cardID, "write", "notes")
	te.checklist(t, "add", listID, cardID, "tag")
	te.checklist(t, "add", listID, cardID, "announce")

	v := te.checklist(t, "toggle", listID, cardID, "1")
	if !v.Applied || v.Done != 1 || v.Total != 3 || v.Percent != 33 {
		t.Fatalf("after toggle: %+v", v)
	}

	// Each command reloads the board, so this reads what toggle saved.
	v = te.checklist(t, "show", listID, cardID)
	if v.Items[0].Text != "write notes" || !v.Items[1].Done {
		t.Fatalf("show: %+v", v.Items)
	}

	v = te.checklist(t, "clear-done", listID, cardID)
	if v.Total != 2 || v.Items[0].Text != "write notes" || v.Items[1].Text != "announce" {
		t.Fatalf("after clear-done: %+v", v.Items)
	}

	v = te.checklist(t, "rm", listID, cardID, "0")
	if v.Total != 1 || v.Items[0].Text != "announce" {
		t.Fatalf("after rm: %+v", v.Items)
	}

	v = te.checklist(t, "rm", listID, cardID, "7")
	if v.Applied || v.Total != 1 {
		t.Errorf("out-of-range rm: %+v", v)
	}

	text := te.mustRun(t, "checklist", "show", listID, cardID)
	if !strings.Contains(text, "Checklist 0/1 (0%)") || !strings.Contains(text, "0. [ ] announce") {
		t.Errorf("text output:\n%s", text)
	}
}

func TestChecklistErrors(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	cardID := te.addCard(t, listID, "Release")

	if _, err := te.run(t, "checklist", "show", listID, "missing"); err == nil {
		t.Error("expected an error for an unknown card")
	}
	if _, err := te.run(t, "checklist", "toggle", listID, cardID, "first"); err == nil {
		t.Error("expected an error for a non-numeric index")
	}

	v := te.checklist(t, "add", listID, cardID, "   ")
	if v.Applied || v.Total != 0 {
		t.Errorf("blank add: %+v", v)
	}
}

func TestSearchCommand(t *testing.T) {
	te := newTestEnv(t)
	listID := te.addList(t, "To Do")
	te.addCard(t, listID, "Foobar task")
	te.addCard(t, listID, "Groceries")

	out := te.mustRun(t, "search", "foo")
	if !strings.Contains(out, "1 card(s) match") || !strings.Contains(out, "Foobar task") {
		t.Errorf("search output:\n%s", out)
	}
	if strings.Contains(out, "Groceries") {
		t.Errorf("search output includes a non-matching card:\n%s", out)
	}

	out = te.mustRun(t, "search", "nothing-here")
	if !strings.Contains(out, "No cards match") {
		t.Errorf("empty search output:\n%s", out)
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	te := newTestEnv(t)

	if out := te.mustRun(t, "theme"); !strings.Contains(out, "light") {
		t.Fatalf("initial theme: %q", out)
	}
	if out := te.mustRun(t, "theme", "toggle"); !strings.Contains(out, "dark") {
		t.Fatalf("after toggle: %q", out)
	}
	if out := te.mustRun(t, "theme"); !strings.Contains(out, "dark") {
		t.Fatalf("stored theme: %q", out)
	}
	if out := te.mustRun(t, "theme", "toggle"); !strings.Contains(out, "light") {
		t.Fatalf("after second toggle: %q", out)
	}
}

func TestSeedCommand(t *testing.T) {
	te := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "board.toml")
	data := `
[[lists]]
title = "To Do"

[[lists.cards]]
title = "Write docs"
due = "2024-01-12"
checklist = [{ text = "outline" }, { text = "draft", done = true }]

[[lists]]
title = "Done"

[[lists.cards]]
title = "Kickoff"
done = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := te.mustRun(t, "seed", path)
	if !strings.Contains(out, "Imported 2 list(s), 2 card(s), 2 checklist item(s)") {
		t.Fatalf("seed output: %q", out)
	}

	var lists []listRow
	if err := json.Unmarshal([]byte(te.mustRun(t, "--json", "board")), &lists); err != nil {
		t.Fatal(err)
	}
	if len(lists) != 2 || lists[0].Cards[0].ItemsDone != 1 || lists[0].Cards[0].ItemsTotal != 2 {
		t.Errorf("seeded board = %+v", lists)
	}
}

func TestConfigInit(t *testing.T) {
	te := newTestEnv(t)

	te.mustRun(t, "config", "init")
	if _, err := os.Stat(te.config); err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if _, err := te.run(t, "config", "init"); err == nil {
		t.Error("expected an error when the config exists")
	}

	out := te.mustRun(t, "config")
	if !strings.Contains(out, te.db) {
		t.Errorf("config output missing db path:\n%s", out)
	}
}
