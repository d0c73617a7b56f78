package task

import (
	"os"
	"path/filepath"
	"testing"
)

func validFile() *File {
	return &File{
		SchemaVersion: 1,
		NextID:        3,
		Tasks: []Task{
			{ID: 1, Title: "First", Category: "Work", Completed: false},
			{ID: 2, Title: "Second", Category: "General", Completed: true, DueDate: "2026-09-01"},
		},
	}
}

func TestValidateMinimal(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr bool
	}{
		{"valid file", func(f *File) {}, false},
		{"wrong schema_version", func(f *File) { f.SchemaVersion = 2 }, true},
		{"zero next_id", func(f *File) { f.NextID = 0 }, true},
		{"missing tasks", func(f *File) { f.Tasks = nil }, true},
		{"task missing title", func(f *File) { f.Tasks[0].Title = "" }, true},
		{"task zero id", func(f *File) { f.Tasks[0].ID = 0 }, true},
		{"duplicate ids", func(f *File) { f.Tasks[1].ID = 1 }, true},
		{"id at next_id", func(f *File) { f.Tasks[1].ID = 3 }, true},
		{"bad due date", func(f *File) { f.Tasks[1].DueDate = "01-09-2026" }, true},
		{"empty due date ok", func(f *File) { f.Tasks[1].DueDate = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(f)
			result := f.Validate(ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v (errors: %v)", result.Valid, tt.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateWithSchema(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")

	schema := `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "required": ["schema_version", "next_id", "tasks"],
  "properties": {
    "schema_version": {"type": "integer", "const": 1},
    "next_id": {"type": "integer", "minimum": 1},
    "tasks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "title", "category", "completed"],
        "properties": {
          "id": {"type": "integer", "minimum": 1},
          "title": {"type": "string", "minLength": 1},
          "description": {"type": "string"},
          "category": {"type": "string"},
          "completed": {"type": "boolean"},
          "due_date": {"type": "string", "pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"},
          "created_at": {"type": "string"},
          "updated_at": {"type": "string"}
        }
      }
    }
  }
}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*File)
		wantErr bool
	}{
		{"valid file with schema", func(f *File) {}, false},
		{"invalid schema_version", func(f *File) { f.SchemaVersion = 2 }, true},
		{"empty title", func(f *File) { f.Tasks[0].Title = "" }, true},
		{"bad due date pattern", func(f *File) { f.Tasks[1].DueDate = "next week" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(f)
			result := f.Validate(ValidationOptions{SchemaPath: schemaPath})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v (errors: %v)", result.Valid, tt.wantErr, result.Errors)
			}
			if !result.UsedSchema {
				t.Error("expected UsedSchema to be true")
			}
		})
	}
}

func TestValidateWithSchemaMissingFile(t *testing.T) {
	f := validFile()

	// Non-existent schema path should fall back to minimal validation.
	result := f.Validate(ValidationOptions{
		SchemaPath: "/non/existent/schema.json",
	})

	if !result.Valid {
		t.Errorf("Valid should be true, got false")
	}
	if result.UsedSchema {
		t.Error("UsedSchema should be false when schema file not found")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected warnings when schema file not found")
	}
}

func TestValidationErrorPath(t *testing.T) {
	f := validFile()
	f.Tasks[1].Title = ""
	result := f.Validate(ValidationOptions{})
	if result.Valid {
		t.Fatal("expected invalid result")
	}

	found := false
	for _, err := range result.Errors {
		ve, ok := err.(*ValidationError)
		if !ok {
			continue
		}
		if ve.Path == "tasks[1].title" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error at tasks[1].title, got %v", result.Errors)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"#/tasks/0/title", "tasks[0].title"},
		{"/next_id", "next_id"},
		{"#/tasks/12", "tasks[12]"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := jsonPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("jsonPointerToPath(%q) = %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
