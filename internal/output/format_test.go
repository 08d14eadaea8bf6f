package output

import (
	"bytes"
	"testing"

	"taskboard/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 3, service.Task{ID: "t1", Title: "Buy milk", Status: service.StatusPending})

	want := "   3  t1        pending      Buy milk\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTask_TruncatesIDAndFlattensTitle(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 12, service.Task{
		ID:     "0f8fad5b-d9cb-469f-a165-70867728950e",
		Title:  "line one\nline two",
		Status: service.StatusInProgress,
	})

	want := "  12  0f8fad5b  in-progress  line one line two\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatGroupSection(t *testing.T) {
	var buf bytes.Buffer
	FormatGroupHeader(&buf, service.StatusInProgress, 1)
	FormatTaskIndented(&buf, 1, service.Task{ID: "t2", Title: "Write report", Status: service.StatusInProgress})

	want := "------------\nIn-Progress (1)\n------------\n       1  t2        Write report\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatStatusCount(t *testing.T) {
	var buf bytes.Buffer
	FormatStatusCount(&buf, service.StatusCompleted, 4)
	if buf.String() != "completed    4\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
