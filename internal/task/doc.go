// Package task owns the in-memory task list and its file persistence.
//
// The store file format (tasks.json) follows the schema defined in tasks.schema.json:
//
//	{
//	  "schema_version": 1,
//	  "next_id": 3,
//	  "tasks": [
//	    {
//	      "id": 1,
//	      "title": "Task title",
//	      "description": "Optional description",
//	      "category": "Work",
//	      "completed": false,
//	      "due_date": "2026-01-31",
//	      "created_at": "2026-01-01T00:00:00Z",
//	      "updated_at": "2026-01-01T00:00:00Z"
//	    }
//	  ]
//	}
//
// The file is read once at startup and rewritten wholesale after every
// mutation. There is no incremental diffing and no transaction log; the
// store file is the sole persistence boundary.
//
// # Identifiers
//
// Task ids are monotonically increasing integers allocated from the
// persisted next_id counter. Deleting a task never frees its id.
//
// # Validation
//
// The package supports two validation modes:
//
// 1. JSON Schema validation (when a schema file is provided):
//   - Full validation against JSON Schema draft-2020-12
//
// 2. Minimal fallback validation (when no schema is available):
//   - Basic structural checks (schema_version, next_id, tasks presence)
//   - Task field validation (positive id, non-empty title, due date format)
//
// # File format
//
// When writing store files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package task
