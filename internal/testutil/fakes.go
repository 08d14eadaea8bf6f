// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"taskboard/internal/service"
)

// SequentialIDs returns an id generator producing "t1", "t2", ...
func SequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}
}

// ExportCall records one FakeExporter.Export invocation.
type ExportCall struct {
	ListName string
	Tasks    []service.Task
}

// FakeExporter is an in-memory implementation of service.Exporter.
type FakeExporter struct {
	mu    sync.Mutex
	calls []ExportCall

	// ExportErr is returned by Export when set.
	ExportErr error
}

// NewFakeExporter creates a FakeExporter.
func NewFakeExporter() *FakeExporter {
	return &FakeExporter{}
}

// Export implements service.Exporter.
func (f *FakeExporter) Export(ctx context.Context, listName string, tasks []service.Task) error {
	if f.ExportErr != nil {
		return f.ExportErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, ExportCall{ListName: listName, Tasks: slices.Clone(tasks)})
	return nil
}

// Calls returns the recorded Export calls.
func (f *FakeExporter) Calls() []ExportCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}
