package service

import (
	"context"
	"strings"
)

// Service is the task engine as seen by front-ends.
// All operations are synchronous; none of them block.
type Service interface {
	// AddTask appends a new task. An empty status means StatusPending.
	AddTask(title string, status Status) (Task, error)

	// EditTask replaces the patched fields of an existing task in place.
	// A patch that changes nothing succeeds without notifying listeners.
	EditTask(id string, patch Patch) (Task, error)

	// DeleteTask removes a task. Unknown ids are ignored.
	DeleteTask(id string)

	// MoveTask sets a task's status and places it at index within the
	// destination status group. index is clamped to the group's bounds.
	MoveTask(id string, status Status, index int) (Task, error)

	// Task returns the task with the given id.
	Task(id string) (Task, error)

	// Tasks returns a copy of the full task sequence in canonical order.
	Tasks() []Task

	// Subscribe registers a listener for committed mutations and returns
	// an id for Unsubscribe.
	Subscribe(l Listener) int

	// Unsubscribe removes a listener. Unknown ids are ignored.
	Unsubscribe(id int)
}

// Exporter publishes a snapshot to an external task service.
type Exporter interface {
	// Export replaces the contents of the named remote list with tasks.
	Export(ctx context.Context, listName string, tasks []Task) error
}

// NormalizeTitle trims surrounding whitespace from a task title.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
