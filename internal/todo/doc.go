// Package todo reads, validates, and writes the task file.
//
// The task file (tasks.json by default) is a single JSON array of task
// records, matching the embedded tasks.schema.json:
//
//	[
//	  {"title": "Write report", "due_date": "2030-05-01", "completed": false},
//	  {"title": "Old item", "due_date": null, "completed": true}
//	]
//
// # Loading
//
// A missing file is a first run and loads as an empty list. A file that
// is not valid JSON, or whose shape does not match the schema, fails
// with ErrCorruptStore. Callers treat that as fatal; nothing is repaired.
// Due dates are not checked against the calendar on load.
//
// # Saving
//
// The whole list is written on every save:
//   - 2-space indentation
//   - Trailing newline
//   - Key order title, due_date, completed
//
// The target is overwritten in place. There is no temporary file or
// backup, so a crash mid-write can leave a truncated file behind.
package todo
