package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// SchemaVersion is the store file format version this package writes.
const SchemaVersion = 1

// DefaultCategory is assigned when a task is created without one.
const DefaultCategory = "General"

// PresetCategories are always offered in the UI, whether or not any
// task uses them.
var PresetCategories = []string{"General", "Work", "Personal", "Urgent"}

// ErrEmptyTitle rejects tasks whose title is empty after trimming.
var ErrEmptyTitle = errors.New("title must not be empty")

// ErrBadDueDate rejects due dates that are not YYYY-MM-DD.
var ErrBadDueDate = errors.New("due date must use YYYY-MM-DD format")

// NotFoundError reports an operation on an unknown task id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %d not found", e.ID)
}

// File represents the store file structure.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	NextID        int64  `json:"next_id"`
	Tasks         []Task `json:"tasks"`
}

// Patch holds the optional fields an edit may change. Nil fields are
// left untouched; a non-nil empty DueDate clears the due date.
type Patch struct {
	Title       *string
	Description *string
	Category    *string
	DueDate     *string
	Completed   *bool
}

// IsZero returns true when the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil &&
		p.DueDate == nil && p.Completed == nil
}

// Store owns the in-memory task list and writes it back to its file
// after every mutation. It is not safe for concurrent use; the UI and
// CLI drive it from a single goroutine.
type Store struct {
	path        string
	file        *File
	loadWarning error

	defaultCategory string
	presets         []string
}

// Open loads the store file at path. A missing file yields an empty
// store; a corrupt or unreadable file also yields an empty store and
// records a warning retrievable via LoadWarning, so a bad file never
// prevents startup.
func Open(path string) *Store {
	s := &Store{
		path:            path,
		file:            emptyFile(),
		defaultCategory: DefaultCategory,
		presets:         PresetCategories,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadWarning = fmt.Errorf("read store file: %w", err)
		}
		return s
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		s.loadWarning = fmt.Errorf("parse store file: %w", err)
		return s
	}
	if f.SchemaVersion != SchemaVersion {
		s.loadWarning = fmt.Errorf("store file schema_version: expected %d, got %d", SchemaVersion, f.SchemaVersion)
		return s
	}

	if f.Tasks == nil {
		f.Tasks = []Task{}
	}
	// Repair next_id if an older writer left it behind the highest id.
	for i := range f.Tasks {
		if f.Tasks[i].ID >= f.NextID {
			f.NextID = f.Tasks[i].ID + 1
		}
	}
	if f.NextID < 1 {
		f.NextID = 1
	}

	s.file = &f
	return s
}

func emptyFile() *File {
	return &File{
		SchemaVersion: SchemaVersion,
		NextID:        1,
		Tasks:         []Task{},
	}
}

// Configure overrides the default category and the preset category
// list. Empty arguments keep the built-in values.
func (s *Store) Configure(defaultCategory string, presets []string) {
	if defaultCategory = strings.TrimSpace(defaultCategory); defaultCategory != "" {
		s.defaultCategory = defaultCategory
	}
	if len(presets) > 0 {
		s.presets = presets
	}
}

// DefaultCategory returns the category assigned to tasks created
// without one.
func (s *Store) DefaultCategory() string {
	return s.defaultCategory
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}

// LoadWarning returns the warning recorded when the store file could
// not be read at Open time, or nil.
func (s *Store) LoadWarning() error {
	return s.loadWarning
}

// File returns a copy of the current in-memory file, for validation
// and inspection.
func (s *Store) File() *File {
	f := File{
		SchemaVersion: s.file.SchemaVersion,
		NextID:        s.file.NextID,
		Tasks:         make([]Task, len(s.file.Tasks)),
	}
	copy(f.Tasks, s.file.Tasks)
	return &f
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.file.Tasks)
}

// List returns a copy of all tasks in file order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.file.Tasks))
	copy(out, s.file.Tasks)
	return out
}

// Get returns a copy of the task with the given id, or nil.
func (s *Store) Get(id int64) *Task {
	for i := range s.file.Tasks {
		if s.file.Tasks[i].ID == id {
			t := s.file.Tasks[i]
			return &t
		}
	}
	return nil
}

// Add validates, appends, and persists a new task. The returned task
// carries the assigned id. Validation failures leave the store
// untouched.
func (s *Store) Add(title, description, category, due string) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	due, err := ParseDueDate(due)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = s.defaultCategory
	}

	now := time.Now().UTC()
	t := Task{
		ID:          s.file.NextID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		Completed:   false,
		DueDate:     due,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	s.file.NextID++
	s.file.Tasks = append(s.file.Tasks, t)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Edit applies the patch to the task with the given id and persists.
// Unknown ids fail with NotFoundError and no side effects; a patch that
// would blank the title fails with ErrEmptyTitle.
func (s *Store) Edit(id int64, p Patch) (*Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}

	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return nil, ErrEmptyTitle
	}
	var due string
	if p.DueDate != nil {
		parsed, err := ParseDueDate(*p.DueDate)
		if err != nil {
			return nil, err
		}
		due = parsed
	}

	t := &s.file.Tasks[idx]
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		cat := strings.TrimSpace(*p.Category)
		if cat == "" {
			cat = s.defaultCategory
		}
		t.Category = cat
	}
	if p.DueDate != nil {
		t.DueDate = due
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	now := time.Now().UTC()
	t.UpdatedAt = &now

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *t
	return &out, nil
}

// Delete removes the task with the given id and persists.
func (s *Store) Delete(id int64) error {
	idx := s.index(id)
	if idx < 0 {
		return &NotFoundError{ID: id}
	}
	s.file.Tasks = append(s.file.Tasks[:idx], s.file.Tasks[idx+1:]...)
	return s.save()
}

// ToggleComplete flips the completion flag and persists. Toggling twice
// returns the task to its original status.
func (s *Store) ToggleComplete(id int64) (*Task, error) {
	idx := s.index(id)
	if idx < 0 {
		return nil, &NotFoundError{ID: id}
	}
	t := &s.file.Tasks[idx]
	t.Completed = !t.Completed
	now := time.Now().UTC()
	t.UpdatedAt = &now

	if err := s.save(); err != nil {
		return nil, err
	}
	out := *t
	return &out, nil
}

// Filter returns the tasks passing the status filter and, when category
// is non-empty, matching the category case-insensitively. The result is
// a copy; filtering never mutates the store.
func (s *Store) Filter(status StatusFilter, category string) []Task {
	category = strings.ToLower(strings.TrimSpace(category))
	var out []Task
	for i := range s.file.Tasks {
		t := &s.file.Tasks[i]
		if !status.Matches(t) {
			continue
		}
		if category != "" && strings.ToLower(t.Category) != category {
			continue
		}
		out = append(out, *t)
	}
	return out
}

// Categories returns the preset categories followed by every other
// category present in the store, the extras sorted alphabetically.
func (s *Store) Categories() []string {
	out := make([]string, len(s.presets))
	copy(out, s.presets)

	seen := make(map[string]bool, len(out))
	for _, c := range out {
		seen[strings.ToLower(c)] = true
	}

	var extra []string
	for i := range s.file.Tasks {
		c := s.file.Tasks[i].Category
		if c == "" || seen[strings.ToLower(c)] {
			continue
		}
		seen[strings.ToLower(c)] = true
		extra = append(extra, c)
	}
	sort.Strings(extra)
	return append(out, extra...)
}

// Reload re-reads the store file from disk, replacing the in-memory
// state. The TUI uses this to pick up edits made by another process.
func (s *Store) Reload() {
	reloaded := Open(s.path)
	s.file = reloaded.file
	s.loadWarning = reloaded.loadWarning
}

// save writes the whole file back with 2-space indentation and a
// trailing newline. A failure surfaces to the caller; there is no retry.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	return nil
}

func (s *Store) index(id int64) int {
	for i := range s.file.Tasks {
		if s.file.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
