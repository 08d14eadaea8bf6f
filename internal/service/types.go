// Package service defines the task engine's types and the interface
// front-ends use to drive it.
package service

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every valid status in board order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// Valid reports whether s is one of the three enumerated statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the display name used for column and filter headings.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In-Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Phrase returns the status in prose form ("in progress").
func (s Status) Phrase() string {
	return strings.ReplaceAll(string(s), "-", " ")
}

// Next returns the status following s in board order, wrapping around.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusPending
}

// ParseStatus parses user input into a Status.
// Matching is case-insensitive; spaces and underscores are accepted in place
// of the hyphen ("in progress", "IN_PROGRESS").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "-", "_", "-").Replace(norm)
	st := Status(norm)
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Value: s, Reason: "must be one of pending, in-progress, completed"}
	}
	return st, nil
}

// Task is a single trackable unit of work.
type Task struct {
	ID     string `json:"id" yaml:"id"`
	Title  string `json:"title" yaml:"title"`
	Status Status `json:"status" yaml:"status"`
}

func (t Task) String() string {
	return fmt.Sprintf("%s [%s] %s", t.ID, t.Status, t.Title)
}

// Patch lists the fields EditTask replaces. Nil fields are left unchanged.
type Patch struct {
	Title  *string
	Status *Status
}

// TitlePatch returns a Patch that only sets the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// StatusPatch returns a Patch that only sets the status.
func StatusPatch(status Status) Patch {
	return Patch{Status: &status}
}

// ChangeKind identifies the mutation that produced a Change.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeEdited  ChangeKind = "edited"
	ChangeDeleted ChangeKind = "deleted"
	ChangeMoved   ChangeKind = "moved"
)

// Change describes one committed mutation.
// Previous holds the task as it was before an edit or move; it is the zero
// Task for additions. Snapshot is the full task sequence after the mutation.
type Change struct {
	Kind     ChangeKind
	Task     Task
	Previous Task
	Snapshot []Task
}

// Listener receives change notifications.
type Listener func(Change)
