// Package store implements the in-memory task engine behind service.Service.
package store

import (
	"runtime/debug"
	"slices"
	"sync"

	"github.com/google/uuid"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Store holds the process-wide task sequence.
// Insertion order is the canonical order of the "all" view; the order of a
// status group is the relative order of its members in that sequence.
type Store struct {
	mu        sync.Mutex
	tasks     []service.Task
	listeners []listener
	nextSubID int

	// Committed changes not yet delivered, in commit order.
	pending    []service.Change
	delivering bool

	newID func() string
	log   *logging.Logger
}

type listener struct {
	id int
	fn service.Listener
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// WithLogger sets the logger used for mutation and listener diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		newID: uuid.NewString,
		log:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ service.Service = (*Store)(nil)

// AddTask implements service.Service.
func (s *Store) AddTask(title string, status service.Status) (service.Task, error) {
	if err := service.ValidateTitle(title); err != nil {
		return service.Task{}, err
	}
	if status == "" {
		status = service.StatusPending
	}
	if !status.Valid() {
		return service.Task{}, invalidStatus(status)
	}

	s.mu.Lock()
	task := service.Task{
		ID:     s.uniqueID(),
		Title:  service.NormalizeTitle(title),
		Status: status,
	}
	s.tasks = append(s.tasks, task)
	s.commitLocked(service.ChangeAdded, task, service.Task{})
	s.mu.Unlock()

	s.log.WithTask(task.ID).Debug("task added", "status", string(task.Status))
	s.notify()
	return task, nil
}

// uniqueID draws ids until one is unused. Must be called with mu held.
func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) < 0 {
			return id
		}
	}
}

// EditTask implements service.Service.
func (s *Store) EditTask(id string, patch service.Patch) (service.Task, error) {
	if patch.Title != nil {
		if err := service.ValidateTitle(*patch.Title); err != nil {
			return service.Task{}, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return service.Task{}, invalidStatus(*patch.Status)
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return service.Task{}, &service.NotFoundError{ID: id}
	}

	prev := s.tasks[i]
	next := prev
	if patch.Title != nil {
		next.Title = service.NormalizeTitle(*patch.Title)
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if next == prev {
		s.mu.Unlock()
		return prev, nil
	}

	s.tasks[i] = next
	s.commitLocked(service.ChangeEdited, next, prev)
	s.mu.Unlock()

	s.log.WithTask(id).Debug("task edited", "status", string(next.Status))
	s.notify()
	return next, nil
}

// DeleteTask implements service.Service.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	removed := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commitLocked(service.ChangeDeleted, removed, removed)
	s.mu.Unlock()

	s.log.WithTask(id).Debug("task deleted")
	s.notify()
}

// MoveTask implements service.Service.
//
// The task is taken out of the sequence and reinserted so that it becomes
// member index of its destination group. When that group is empty the task
// keeps its canonical position. Dropping a task back on its own slot is a
// no-op.
func (s *Store) MoveTask(id string, status service.Status, index int) (service.Task, error) {
	if !status.Valid() {
		return service.Task{}, invalidStatus(status)
	}

	s.mu.Lock()
	pos := s.indexLocked(id)
	if pos < 0 {
		s.mu.Unlock()
		return service.Task{}, &service.NotFoundError{ID: id}
	}

	prev := s.tasks[pos]
	rest := slices.Delete(slices.Clone(s.tasks), pos, pos+1)

	// Positions in rest of the destination group's members.
	var group []int
	current := 0
	for i, t := range rest {
		if t.Status != status {
			continue
		}
		if i < pos {
			current++
		}
		group = append(group, i)
	}
	index = max(0, min(index, len(group)))

	if prev.Status == status && index == current {
		s.mu.Unlock()
		return prev, nil
	}

	var at int
	switch {
	case index < len(group):
		at = group[index]
	case len(group) > 0:
		at = group[len(group)-1] + 1
	default:
		at = pos
	}

	moved := prev
	moved.Status = status
	s.tasks = slices.Insert(rest, at, moved)
	s.commitLocked(service.ChangeMoved, moved, prev)
	s.mu.Unlock()

	s.log.WithTask(id).Debug("task moved",
		"from", string(prev.Status), "to", string(status), "index", index)
	s.notify()
	return moved, nil
}

// Task implements service.Service.
func (s *Store) Task(id string) (service.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return service.Task{}, &service.NotFoundError{ID: id}
	}
	return s.tasks[i], nil
}

// Tasks implements service.Service.
func (s *Store) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Subscribe implements service.Service.
func (s *Store) Subscribe(fn service.Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	s.listeners = append(s.listeners, listener{id: s.nextSubID, fn: fn})
	return s.nextSubID
}

// Unsubscribe implements service.Service.
func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool {
		return l.id == id
	})
}

func (s *Store) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t service.Task) bool {
		return t.ID == id
	})
}

// commitLocked queues the change for delivery. Must be called with mu held,
// so the queue order is the commit order.
func (s *Store) commitLocked(kind service.ChangeKind, task, prev service.Task) {
	s.pending = append(s.pending, service.Change{
		Kind:     kind,
		Task:     task,
		Previous: prev,
		Snapshot: slices.Clone(s.tasks),
	})
}

// notify delivers queued changes to every listener in registration order.
// Listeners run without the lock so they may call back into the store.
// Only one goroutine drains at a time; a change committed while another
// goroutine (or a listener) is delivering is handed to that drain, which
// keeps delivery in commit order.
func (s *Store) notify() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		change := s.pending[0]
		s.pending = s.pending[1:]
		ls := slices.Clone(s.listeners)
		s.mu.Unlock()

		for _, l := range ls {
			s.safeCall(l.fn, change)
		}

		s.mu.Lock()
	}
	s.delivering = false
	s.pending = nil
	s.mu.Unlock()
}

func (s *Store) safeCall(fn service.Listener, change service.Change) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("change listener panicked",
				"kind", string(change.Kind), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn(change)
}

func invalidStatus(status service.Status) error {
	return &service.ValidationError{
		Field:  "status",
		Value:  string(status),
		Reason: "must be one of pending, in-progress, completed",
	}
}
