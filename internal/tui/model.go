// Package tui implements the interactive board: one column per status,
// keyboard-driven card moves standing in for drag-and-drop.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

type mode int

const (
	modeNormal mode = iota
	modeAdding
	modeEditing
	modeConfirmDelete
)

// Notices shown after committed changes.
const (
	NoticeAdded   = "Task added successfully."
	NoticeEdited  = "Task is edited successfully."
	NoticeDeleted = "Task deleted successfully."
	NoticeMoved   = "Task moved."
	NoticeBlank   = "Task title cannot be empty."
)

// changeQueue collects store notifications until Update drains them.
// Listeners may fire on any goroutine.
type changeQueue struct {
	mu      sync.Mutex
	changes []service.Change
}

func (q *changeQueue) push(c service.Change) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.changes = append(q.changes, c)
}

func (q *changeQueue) drain() []service.Change {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.changes
	q.changes = nil
	return out
}

// Model is the Bubble Tea model for the board.
type Model struct {
	svc   service.Service
	log   *logging.Logger
	queue *changeQueue
	subID int

	filter view.Filter
	col    int
	row    int

	mode  mode
	input textinput.Model

	notice    string
	noticeErr bool

	width int
}

// NewModel creates a board model subscribed to svc.
// Call Close when done to drop the subscription.
func NewModel(svc service.Service, log *logging.Logger) Model {
	if log == nil {
		log = logging.NopLogger()
	}
	ti := textinput.New()
	ti.CharLimit = 200
	ti.Width = 40

	m := Model{
		svc:    svc,
		log:    log,
		queue:  &changeQueue{},
		filter: view.All,
		input:  ti,
	}
	m.subID = svc.Subscribe(m.queue.push)
	return m
}

// Close removes the model's store subscription.
func (m Model) Close() {
	m.svc.Unsubscribe(m.subID)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Notice returns the current notice line and whether it reports an error.
func (m Model) Notice() (string, bool) {
	return m.notice, m.noticeErr
}

// Filter returns the active filter.
func (m Model) Filter() view.Filter {
	return m.filter
}

// Selected returns the task under the cursor.
func (m Model) Selected() (service.Task, bool) {
	cards := m.cards(m.column())
	if m.row < 0 || m.row >= len(cards) {
		return service.Task{}, false
	}
	return cards[m.row], true
}

// columns returns the statuses shown, left to right.
func (m Model) columns() []service.Status {
	if m.filter == view.All {
		return service.Statuses
	}
	return []service.Status{service.Status(m.filter)}
}

// column returns the status of the selected column.
func (m Model) column() service.Status {
	cols := m.columns()
	return cols[min(max(m.col, 0), len(cols)-1)]
}

// cards returns the tasks of one column in within-group order.
func (m Model) cards(status service.Status) []service.Task {
	groups := view.GroupByStatus(view.FilterByStatus(m.svc.Tasks(), m.filter))
	return groups[status]
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch m.mode {
		case modeAdding, modeEditing:
			m, cmd = m.updateInput(msg)
		case modeConfirmDelete:
			m = m.updateConfirm(msg)
		default:
			m, cmd = m.updateNormal(msg)
		}
	}
	m = m.applyChanges()
	m.clampCursor()
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeySpace {
		return m.cycleStatus(), nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	case "shift+left", "H":
		m = m.moveAcross(-1)
	case "shift+right", "L":
		m = m.moveAcross(1)
	case "shift+up", "K":
		m = m.moveWithin(-1)
	case "shift+down", "J":
		m = m.moveWithin(1)
	case " ":
		m = m.cycleStatus()
	case "a":
		m.mode = modeAdding
		m.input.Reset()
		m.input.Placeholder = "New task title"
		cmd := m.input.Focus()
		return m, cmd
	case "e":
		task, ok := m.Selected()
		if !ok {
			return m, nil
		}
		m.mode = modeEditing
		m.input.SetValue(task.Title)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case "d", "delete":
		if _, ok := m.Selected(); ok {
			m.mode = modeConfirmDelete
		}
	case "f":
		m.filter = m.filter.Next()
		m.col, m.row = 0, 0
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil
	case "enter":
		return m.submitInput(), nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput adds or renames a task. A blank title keeps the input open.
func (m Model) submitInput() Model {
	var (
		task service.Task
		err  error
	)
	if m.mode == modeAdding {
		task, err = m.svc.AddTask(m.input.Value(), m.column())
	} else {
		sel, ok := m.Selected()
		if !ok {
			m.mode = modeNormal
			return m
		}
		task, err = m.svc.EditTask(sel.ID, service.TitlePatch(m.input.Value()))
		if err == nil && task == sel {
			// Unchanged edits send no notification to replace the notice.
			m.notice, m.noticeErr = "", false
		}
	}
	if err != nil {
		return m.fail(err)
	}

	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
	return m.follow(task)
}

func (m Model) updateConfirm(msg tea.KeyMsg) Model {
	if msg.String() == "y" || msg.String() == "Y" {
		if task, ok := m.Selected(); ok {
			m.svc.DeleteTask(task.ID)
		}
	}
	m.mode = modeNormal
	return m
}

// moveAcross moves the selected card to the neighbouring status, keeping
// its row where the destination column allows.
func (m Model) moveAcross(dir int) Model {
	task, ok := m.Selected()
	if !ok {
		return m
	}
	i := slices.Index(service.Statuses, task.Status) + dir
	if i < 0 || i >= len(service.Statuses) {
		return m
	}
	moved, err := m.svc.MoveTask(task.ID, service.Statuses[i], m.row)
	if err != nil {
		return m.fail(err)
	}
	return m.follow(moved)
}

// moveWithin reorders the selected card inside its column.
func (m Model) moveWithin(dir int) Model {
	task, ok := m.Selected()
	if !ok || m.row+dir < 0 {
		return m
	}
	moved, err := m.svc.MoveTask(task.ID, task.Status, m.row+dir)
	if err != nil {
		return m.fail(err)
	}
	return m.follow(moved)
}

// cycleStatus is the status selector: pending, in-progress, completed, pending.
func (m Model) cycleStatus() Model {
	task, ok := m.Selected()
	if !ok {
		return m
	}
	edited, err := m.svc.EditTask(task.ID, service.StatusPatch(task.Status.Next()))
	if err != nil {
		return m.fail(err)
	}
	return m.follow(edited)
}

// follow puts the cursor on task if it is visible.
func (m Model) follow(task service.Task) Model {
	for c, st := range m.columns() {
		for r, t := range m.cards(st) {
			if t.ID == task.ID {
				m.col, m.row = c, r
				return m
			}
		}
	}
	return m
}

func (m Model) fail(err error) Model {
	var ve *service.ValidationError
	if errors.As(err, &ve) && ve.Field == "title" {
		m.notice = NoticeBlank
	} else {
		m.notice = err.Error()
	}
	m.noticeErr = true
	m.log.Debug("board action rejected", "error", err)
	return m
}

// applyChanges turns queued store notifications into the notice line.
func (m Model) applyChanges() Model {
	for _, c := range m.queue.drain() {
		m.notice = noticeFor(c)
		m.noticeErr = false
	}
	return m
}

func noticeFor(c service.Change) string {
	statusChanged := c.Previous.Status != c.Task.Status
	switch c.Kind {
	case service.ChangeAdded:
		return NoticeAdded
	case service.ChangeDeleted:
		return NoticeDeleted
	case service.ChangeEdited:
		if statusChanged {
			return fmt.Sprintf("Task status changed to %s", c.Task.Status.Phrase())
		}
		return NoticeEdited
	case service.ChangeMoved:
		if statusChanged {
			return fmt.Sprintf("Task status changed to %s", c.Task.Status.Phrase())
		}
		return NoticeMoved
	}
	return ""
}

func (m *Model) clampCursor() {
	m.col = min(max(m.col, 0), len(m.columns())-1)
	n := len(m.cards(m.column()))
	m.row = min(max(m.row, 0), max(n-1, 0))
}
