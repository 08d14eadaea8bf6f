package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/testutil"
	"taskboard/internal/view"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func newBoard(t *testing.T, seed ...string) (Model, *store.Store) {
	t.Helper()
	st := store.New(store.WithIDGenerator(testutil.SequentialIDs()))
	for i := 0; i+1 < len(seed); i += 2 {
		if _, err := st.AddTask(seed[i], service.Status(seed[i+1])); err != nil {
			t.Fatalf("AddTask(%q): %v", seed[i], err)
		}
	}
	m := NewModel(st, nil)
	t.Cleanup(m.Close)
	return m, st
}

func order(st *store.Store) string {
	var parts []string
	for _, t := range st.Tasks() {
		parts = append(parts, t.ID+":"+string(t.Status))
	}
	return strings.Join(parts, ",")
}

func TestAddTask(t *testing.T) {
	m, st := newBoard(t)

	m = press(m, "a", "Buy milk", "enter")

	tasks := st.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Status != service.StatusPending {
		t.Fatalf("tasks = %+v", tasks)
	}
	if m.mode != modeNormal {
		t.Errorf("mode = %d, want normal", m.mode)
	}
	if notice, isErr := m.Notice(); notice != NoticeAdded || isErr {
		t.Errorf("notice = %q (err %v)", notice, isErr)
	}
}

func TestAddTask_UsesSelectedColumn(t *testing.T) {
	m, st := newBoard(t)

	m = press(m, "l", "l", "a", "Ship it", "enter")

	if got := order(st); got != "t1:completed" {
		t.Errorf("order = %q", got)
	}
	if sel, ok := m.Selected(); !ok || sel.ID != "t1" {
		t.Errorf("selected = %+v, %v", sel, ok)
	}
}

func TestAddTask_BlankTitle(t *testing.T) {
	m, st := newBoard(t)

	m = press(m, "a", "   ", "enter")

	if st.Len() != 0 {
		t.Errorf("expected no tasks, got %d", st.Len())
	}
	if m.mode != modeAdding {
		t.Errorf("input should stay open after a blank title")
	}
	if notice, isErr := m.Notice(); notice != NoticeBlank || !isErr {
		t.Errorf("notice = %q (err %v)", notice, isErr)
	}

	m = press(m, "esc")
	if m.mode != modeNormal {
		t.Errorf("esc should cancel input")
	}
}

func TestQuitKeyNotCapturedWhileTyping(t *testing.T) {
	m, st := newBoard(t)

	m = press(m, "a", "q", "enter")

	if st.Len() != 1 || st.Tasks()[0].Title != "q" {
		t.Errorf("tasks = %+v", st.Tasks())
	}
}

func TestEditTitle(t *testing.T) {
	m, st := newBoard(t, "Buy milk", "pending")

	m = press(m, "e")
	if m.input.Value() != "Buy milk" {
		t.Fatalf("input = %q, want current title", m.input.Value())
	}
	m.input.SetValue("Buy oat milk")
	m = press(m, "enter")

	task, _ := st.Task("t1")
	if task.Title != "Buy oat milk" || task.Status != service.StatusPending {
		t.Errorf("task = %+v", task)
	}
	if notice, _ := m.Notice(); notice != NoticeEdited {
		t.Errorf("notice = %q", notice)
	}
}

func TestEditTitle_UnchangedClearsNotice(t *testing.T) {
	m, st := newBoard(t, "Buy milk", "pending")

	m = press(m, "e")
	m.input.SetValue("   ")
	m = press(m, "enter")
	if notice, isErr := m.Notice(); notice != NoticeBlank || !isErr {
		t.Fatalf("notice = %q (err %v)", notice, isErr)
	}

	m.input.SetValue("Buy milk")
	m = press(m, "enter")

	if m.mode != modeNormal {
		t.Errorf("mode = %d, want normal", m.mode)
	}
	if notice, isErr := m.Notice(); notice != "" || isErr {
		t.Errorf("notice = %q (err %v), want cleared", notice, isErr)
	}
	if task, _ := st.Task("t1"); task.Title != "Buy milk" {
		t.Errorf("task = %+v", task)
	}
}

func TestCycleStatus(t *testing.T) {
	m, st := newBoard(t, "Buy milk", "pending")

	m = press(m, "space")

	task, _ := st.Task("t1")
	if task.Status != service.StatusInProgress {
		t.Fatalf("status = %s", task.Status)
	}
	if notice, _ := m.Notice(); notice != "Task status changed to in progress" {
		t.Errorf("notice = %q", notice)
	}
	if m.column() != service.StatusInProgress {
		t.Errorf("cursor should follow the card, column = %s", m.column())
	}

	m = press(m, "space", "space")
	task, _ = st.Task("t1")
	if task.Status != service.StatusPending {
		t.Errorf("status should wrap to pending, got %s", task.Status)
	}
}

func TestMoveAcross(t *testing.T) {
	m, st := newBoard(t,
		"A", "pending",
		"B", "pending",
		"C", "in-progress",
	)

	m = press(m, "j", "L")

	if got := order(st); got != "t1:pending,t3:in-progress,t2:in-progress" {
		t.Errorf("order = %q", got)
	}
	sel, _ := m.Selected()
	if sel.ID != "t2" || m.col != 1 || m.row != 1 {
		t.Errorf("cursor at col %d row %d on %s", m.col, m.row, sel.ID)
	}
	if notice, _ := m.Notice(); notice != "Task status changed to in progress" {
		t.Errorf("notice = %q", notice)
	}
}

func TestMoveAcross_Edges(t *testing.T) {
	m, st := newBoard(t, "A", "pending", "B", "completed")

	m = press(m, "H")
	m = press(m, "l", "l", "L")

	if got := order(st); got != "t1:pending,t2:completed" {
		t.Errorf("order = %q", got)
	}
	if notice, _ := m.Notice(); notice != "" {
		t.Errorf("unexpected notice %q", notice)
	}
}

func TestMoveWithin(t *testing.T) {
	m, st := newBoard(t, "A", "pending", "B", "pending", "C", "pending")

	m = press(m, "j", "j", "K")

	if got := order(st); got != "t1:pending,t3:pending,t2:pending" {
		t.Errorf("order = %q", got)
	}
	if sel, _ := m.Selected(); sel.ID != "t3" || m.row != 1 {
		t.Errorf("cursor on %s row %d", sel.ID, m.row)
	}
	if notice, _ := m.Notice(); notice != NoticeMoved {
		t.Errorf("notice = %q", notice)
	}

	// Past the bottom is clamped, so the last card stays put.
	m = press(m, "j", "J")
	if got := order(st); got != "t1:pending,t3:pending,t2:pending" {
		t.Errorf("order after clamped move = %q", got)
	}
}

func TestDelete(t *testing.T) {
	m, st := newBoard(t, "A", "pending", "B", "pending")

	m = press(m, "d", "n")
	if st.Len() != 2 {
		t.Fatalf("delete should need confirmation")
	}

	m = press(m, "j", "d", "y")
	if got := order(st); got != "t1:pending" {
		t.Errorf("order = %q", got)
	}
	if notice, _ := m.Notice(); notice != NoticeDeleted {
		t.Errorf("notice = %q", notice)
	}
	if sel, ok := m.Selected(); !ok || sel.ID != "t1" {
		t.Errorf("cursor should clamp onto remaining card, got %+v", sel)
	}
}

func TestDelete_EmptyColumn(t *testing.T) {
	m, _ := newBoard(t)

	m = press(m, "d")

	if m.mode != modeNormal {
		t.Errorf("delete on an empty column should not prompt")
	}
}

func TestFilterCycle(t *testing.T) {
	m, _ := newBoard(t, "A", "pending", "B", "completed")

	m = press(m, "f")
	if m.Filter() != view.Filter(service.StatusPending) {
		t.Fatalf("filter = %s", m.Filter())
	}
	if cols := m.columns(); len(cols) != 1 || cols[0] != service.StatusPending {
		t.Errorf("columns = %v", cols)
	}

	m = press(m, "f", "f")
	if sel, ok := m.Selected(); !ok || sel.ID != "t2" {
		t.Errorf("completed view should select B, got %+v", sel)
	}

	m = press(m, "f")
	if m.Filter() != view.All {
		t.Errorf("filter should wrap to all, got %s", m.Filter())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newBoard(t)

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
}

func TestExternalChangesShowNotice(t *testing.T) {
	m, st := newBoard(t)

	st.AddTask("from elsewhere", "")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	if notice, _ := m.Notice(); notice != NoticeAdded {
		t.Errorf("notice = %q", notice)
	}
}

func TestCloseUnsubscribes(t *testing.T) {
	st := store.New()
	m := NewModel(st, nil)
	m.Close()

	st.AddTask("x", "")

	if got := m.queue.drain(); len(got) != 0 {
		t.Errorf("expected no queued changes after Close, got %d", len(got))
	}
}

func TestView(t *testing.T) {
	m, _ := newBoard(t, "Buy milk", "pending", "Ship it", "completed")

	out := m.View()
	for _, want := range []string{"Pending", "In-Progress", "Completed", "Buy milk", "Ship it", "No tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = press(m, "d")
	if !strings.Contains(m.View(), `Delete "Buy milk"? (y/n)`) {
		t.Errorf("confirm prompt missing")
	}
}
