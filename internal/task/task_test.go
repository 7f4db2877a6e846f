package task

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tk := New("Write report", "2030-05-01")
	if tk.Title != "Write report" {
		t.Errorf("Title: got %q, want %q", tk.Title, "Write report")
	}
	if tk.DueDate != "2030-05-01" {
		t.Errorf("DueDate: got %q, want 2030-05-01", tk.DueDate)
	}
	if tk.Completed {
		t.Error("new task should not be completed")
	}
	if tk.Status() != StatusPending {
		t.Errorf("Status: got %s, want %s", tk.Status(), StatusPending)
	}
}

func TestMarkCompleted(t *testing.T) {
	tk := New("a", "2030-01-01")
	tk.MarkCompleted()
	if !tk.Completed {
		t.Fatal("expected task to be completed")
	}
	tk.MarkCompleted()
	if !tk.Completed || tk.Status() != StatusDone {
		t.Errorf("second MarkCompleted changed state: %+v", tk)
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Buy milk", "Buy milk", false},
		{"  padded  ", "padded", false},
		{"", "", true},
		{"   \t", "", true},
	}
	for _, tt := range tests {
		got, err := ValidateTitle(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrTitleRequired) {
				t.Errorf("ValidateTitle(%q): got err %v, want ErrTitleRequired", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ValidateTitle(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ValidateTitle(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	tasks := []Task{
		{Title: "A", DueDate: "2030-01-01"},
		{Title: "B", DueDate: "2031-12-31", Completed: true},
		{Title: "C", NullDueDate: true},
		{Title: "D", DueDate: ""},
	}

	got := FromRecords(Records(tasks))
	if len(got) != len(tasks) {
		t.Fatalf("len: got %d, want %d", len(got), len(tasks))
	}
	for i := range tasks {
		if got[i] != tasks[i] {
			t.Errorf("task %d: got %+v, want %+v", i, got[i], tasks[i])
		}
	}
}

func TestRecordJSONShape(t *testing.T) {
	tk := Task{Title: "A", DueDate: "2030-01-01", Completed: true}
	data, err := json.Marshal(tk.Record())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"title":"A","due_date":"2030-01-01","completed":true}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	data, err = json.Marshal(Task{Title: "B", NullDueDate: true}.Record())
	if err != nil {
		t.Fatal(err)
	}
	want = `{"title":"B","due_date":null,"completed":false}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestFromRecordNullDueDate(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":null,"completed":false}`), &r); err != nil {
		t.Fatal(err)
	}
	tk := FromRecord(r)
	if !tk.NullDueDate || tk.DueDate != "" {
		t.Errorf("got %+v, want null due date", tk)
	}
	if tk.DueText() != "None" {
		t.Errorf("DueText: got %q, want None", tk.DueText())
	}
	if tk.Record().DueDate != nil {
		t.Error("null due date should serialize back to null")
	}
}

func TestEmptyDueDateStaysDistinctFromNull(t *testing.T) {
	var r Record
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":"","completed":false}`), &r); err != nil {
		t.Fatal(err)
	}
	tk := FromRecord(r)
	if tk.NullDueDate {
		t.Fatal("empty due_date loaded as null")
	}
	data, err := json.Marshal(tk.Record())
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"title":"x","due_date":"","completed":false}`; string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
	if tk.DueText() != "" {
		t.Errorf("DueText: got %q, want empty", tk.DueText())
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past pending", Task{Title: "a", DueDate: "2026-03-09"}, true},
		{"today pending", Task{Title: "a", DueDate: "2026-03-10"}, false},
		{"future pending", Task{Title: "a", DueDate: "2026-03-11"}, false},
		{"past completed", Task{Title: "a", DueDate: "2020-01-01", Completed: true}, false},
		{"no date", Task{Title: "a", NullDueDate: true}, false},
		{"empty date", Task{Title: "a"}, false},
		{"garbage date", Task{Title: "a", DueDate: "soon"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.Overdue(now); got != tt.want {
				t.Errorf("Overdue: got %v, want %v", got, tt.want)
			}
		})
	}
}
