package task

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestOpenMissingFile(t *testing.T) {
	s := newTestStore(t)

	if s.LoadWarning() != nil {
		t.Errorf("missing file should not warn, got %v", s.LoadWarning())
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}

func TestOpenCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "this is not json{"},
		{"wrong schema version", `{"schema_version": 99, "next_id": 1, "tasks": []}`},
		{"truncated", `{"schema_version": 1, "next_id`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			s := Open(path)
			if s.LoadWarning() == nil {
				t.Error("corrupt file should record a load warning")
			}
			if s.Len() != 0 {
				t.Errorf("corrupt file should yield empty store, got %d tasks", s.Len())
			}

			// The store must still accept mutations.
			if _, err := s.Add("recovered", "", "", ""); err != nil {
				t.Errorf("Add after corrupt load failed: %v", err)
			}
		})
	}
}

func TestAdd(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Add("  Buy milk  ", " two liters ", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if got.ID != 1 {
		t.Errorf("ID: got %d, want 1", got.ID)
	}
	if got.Title != "Buy milk" {
		t.Errorf("Title: got %q, want %q", got.Title, "Buy milk")
	}
	if got.Description != "two liters" {
		t.Errorf("Description: got %q, want %q", got.Description, "two liters")
	}
	if got.Category != DefaultCategory {
		t.Errorf("Category: got %q, want %q", got.Category, DefaultCategory)
	}
	if got.Completed {
		t.Error("new task should not be completed")
	}
	if got.CreatedAt == nil || got.UpdatedAt == nil {
		t.Error("timestamps should be set")
	}

	if fetched := s.Get(got.ID); fetched == nil || fetched.Title != "Buy milk" {
		t.Errorf("Get(%d) = %+v, want the added task", got.ID, fetched)
	}
}

func TestAddValidation(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		due     string
		wantErr error
	}{
		{"empty title", "", "", ErrEmptyTitle},
		{"whitespace title", "   ", "", ErrEmptyTitle},
		{"bad due date", "ok", "tomorrow", ErrBadDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			_, err := s.Add(tt.title, "", "", tt.due)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Add error = %v, want %v", err, tt.wantErr)
			}
			if s.Len() != 0 {
				t.Error("rejected add must not mutate the store")
			}
			if _, statErr := os.Stat(s.Path()); !os.IsNotExist(statErr) {
				t.Error("rejected add must not write the store file")
			}
		})
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Add("first", "", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	second, err := s.Add("second", "", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("ids must be unique, both got %d", first.ID)
	}
	if second.ID != first.ID+1 {
		t.Errorf("ids should increase monotonically: %d then %d", first.ID, second.ID)
	}
}

func TestEdit(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("original", "desc", "Work", "2026-09-01")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	title := "renamed"
	got, err := s.Edit(added.ID, Patch{Title: &title})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	if got.Title != "renamed" {
		t.Errorf("Title: got %q, want %q", got.Title, "renamed")
	}
	// Untouched fields survive a partial patch.
	if got.Description != "desc" || got.Category != "Work" || got.DueDate != "2026-09-01" {
		t.Errorf("nil patch fields must be preserved, got %+v", got)
	}
}

func TestEditClearsDueDate(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("task", "", "", "2026-09-01")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	empty := ""
	got, err := s.Edit(added.ID, Patch{DueDate: &empty})
	if err != nil {
		t.Fatalf("Edit failed: %v", err)
	}
	if got.DueDate != "" {
		t.Errorf("DueDate: got %q, want empty", got.DueDate)
	}
}

func TestEditNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add("only", "", "", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	title := "x"
	_, err := s.Edit(999, Patch{Title: &title})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Edit error = %v, want NotFoundError", err)
	}
	if nf.ID != 999 {
		t.Errorf("NotFoundError.ID: got %d, want 999", nf.ID)
	}
	if s.Get(1).Title != "only" {
		t.Error("failed edit must leave other tasks untouched")
	}
}

func TestEditRejectsEmptyTitle(t *testing.T) {
	s := newTestStore(t)
	added, err := s.Add("keep me", "", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	blank := "  "
	if _, err := s.Edit(added.ID, Patch{Title: &blank}); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("Edit error = %v, want ErrEmptyTitle", err)
	}
	if s.Get(added.ID).Title != "keep me" {
		t.Error("rejected edit must not change the task")
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Add("a", "", "", "")
	b, _ := s.Add("b", "", "", "")

	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if s.Get(a.ID) != nil {
		t.Error("deleted task still retrievable via Get")
	}
	for _, task := range s.List() {
		if task.ID == a.ID {
			t.Error("deleted task still in List")
		}
	}
	for _, task := range s.Filter(StatusAll, "") {
		if task.ID == a.ID {
			t.Error("deleted task still in Filter")
		}
	}
	if s.Get(b.ID) == nil {
		t.Error("other task lost by delete")
	}

	var nf *NotFoundError
	if err := s.Delete(a.ID); !errors.As(err, &nf) {
		t.Errorf("second Delete error = %v, want NotFoundError", err)
	}
}

func TestDeleteDoesNotReuseIDs(t *testing.T) {
	s := newTestStore(t)
	a, _ := s.Add("a", "", "", "")
	if err := s.Delete(a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	b, err := s.Add("b", "", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if b.ID <= a.ID {
		t.Errorf("id %d reused after delete of %d", b.ID, a.ID)
	}
}

func TestToggleCompleteTwiceIsIdentity(t *testing.T) {
	s := newTestStore(t)
	added, _ := s.Add("flip me", "", "", "")

	once, err := s.ToggleComplete(added.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if !once.Completed {
		t.Error("first toggle should complete the task")
	}

	twice, err := s.ToggleComplete(added.ID)
	if err != nil {
		t.Fatalf("ToggleComplete failed: %v", err)
	}
	if twice.Completed {
		t.Error("second toggle should restore pending status")
	}

	var nf *NotFoundError
	if _, err := s.ToggleComplete(999); !errors.As(err, &nf) {
		t.Errorf("ToggleComplete(999) error = %v, want NotFoundError", err)
	}
}

func TestFilter(t *testing.T) {
	s := newTestStore(t)
	s.Add("w1", "", "Work", "")
	s.Add("w2", "", "Work", "")
	s.Add("p1", "", "Personal", "")
	done, _ := s.Add("w3", "", "Work", "")
	s.ToggleComplete(done.ID)

	tests := []struct {
		name     string
		status   StatusFilter
		category string
		want     int
	}{
		{"all", StatusAll, "", 4},
		{"completed", StatusCompleted, "", 1},
		{"pending", StatusPending, "", 3},
		{"category exact", StatusAll, "Work", 3},
		{"category case-insensitive", StatusAll, "work", 3},
		{"status and category", StatusPending, "Work", 2},
		{"unknown category", StatusAll, "Errands", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.status, tt.category)
			if len(got) != tt.want {
				t.Errorf("Filter(%s, %q) returned %d tasks, want %d", tt.status, tt.category, len(got), tt.want)
			}
			for _, task := range got {
				if !tt.status.Matches(&task) {
					t.Errorf("task %d fails status filter %s", task.ID, tt.status)
				}
				if tt.category != "" && !strings.EqualFold(task.Category, tt.category) {
					t.Errorf("task %d category %q does not match %q", task.ID, task.Category, tt.category)
				}
			}
		})
	}

	if s.Len() != 4 {
		t.Error("Filter must not mutate the store")
	}
}

func TestCategories(t *testing.T) {
	s := newTestStore(t)
	s.Add("a", "", "Errands", "")
	s.Add("b", "", "Work", "")
	s.Add("c", "", "errands", "")
	s.Add("d", "", "Admin", "")

	got := s.Categories()

	wantPrefix := PresetCategories
	for i, want := range wantPrefix {
		if got[i] != want {
			t.Fatalf("Categories()[%d] = %q, want preset %q (full: %v)", i, got[i], want, got)
		}
	}
	rest := got[len(wantPrefix):]
	if len(rest) != 2 || rest[0] != "Admin" || rest[1] != "Errands" {
		t.Errorf("extra categories = %v, want [Admin Errands]", rest)
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := Open(path)

	a, _ := s.Add("first", "one", "Work", "2026-09-01")
	b, _ := s.Add("second", "", "Personal", "")
	c, _ := s.Add("third", "", "", "")
	s.ToggleComplete(b.ID)
	title := "first, renamed"
	s.Edit(a.ID, Patch{Title: &title})
	s.Delete(c.ID)

	reloaded := Open(path)
	if reloaded.LoadWarning() != nil {
		t.Fatalf("reload warned: %v", reloaded.LoadWarning())
	}

	want := s.List()
	got := reloaded.List()
	if len(got) != len(want) {
		t.Fatalf("task count after reload: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Title != w.Title || g.Description != w.Description ||
			g.Category != w.Category || g.Completed != w.Completed || g.DueDate != w.DueDate {
			t.Errorf("task %d: got %+v, want %+v", i, g, w)
		}
	}

	// next_id must survive the round trip so ids are never reused.
	next, err := reloaded.Add("fourth", "", "", "")
	if err != nil {
		t.Fatalf("Add after reload failed: %v", err)
	}
	if next.ID != c.ID+1 {
		t.Errorf("id after reload: got %d, want %d", next.ID, c.ID+1)
	}
}

func TestSaveFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	s := Open(path)
	if _, err := s.Add("format check", "", "", ""); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "\n  \"schema_version\"") {
		t.Error("expected 2-space indentation")
	}
	if !strings.HasSuffix(content, "\n") {
		t.Error("expected trailing newline")
	}
}

func TestOpenRepairsNextID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `{
  "schema_version": 1,
  "next_id": 1,
  "tasks": [
    {"id": 7, "title": "stale counter", "category": "General", "completed": false}
  ]
}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := Open(path)
	added, err := s.Add("new", "", "", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != 8 {
		t.Errorf("repaired next id: got %d, want 8", added.ID)
	}
}

func TestSaveFailureSurfaces(t *testing.T) {
	dir := t.TempDir()
	// A directory at the store path makes every write fail.
	path := filepath.Join(dir, "tasks.json")
	if err := os.Mkdir(path, 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	s := &Store{path: path, file: emptyFile()}
	_, err := s.Add("doomed", "", "", "")
	if err == nil {
		t.Fatal("Add should surface the write failure")
	}
	if !strings.Contains(err.Error(), "write store file") {
		t.Errorf("error should wrap the write context, got %v", err)
	}
}

func TestConfigure(t *testing.T) {
	s := newTestStore(t)
	s.Configure("Chores", []string{"Chores", "Errands"})

	created, err := s.Add("Sweep the floor", "", "", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.Category != "Chores" {
		t.Errorf("category = %q, want %q", created.Category, "Chores")
	}

	cats := s.Categories()
	if len(cats) < 2 || cats[0] != "Chores" || cats[1] != "Errands" {
		t.Errorf("Categories() = %v, want configured presets first", cats)
	}

	// Empty arguments keep the current settings.
	s.Configure("", nil)
	if s.DefaultCategory() != "Chores" {
		t.Errorf("DefaultCategory() = %q after no-op Configure", s.DefaultCategory())
	}
}
