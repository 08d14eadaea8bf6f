package view_test

import (
	"slices"
	"testing"

	"taskboard/internal/service"
	"taskboard/internal/view"
)

var sample = []service.Task{
	{ID: "1", Title: "a", Status: service.StatusPending},
	{ID: "2", Title: "b", Status: service.StatusCompleted},
	{ID: "3", Title: "c", Status: service.StatusInProgress},
	{ID: "4", Title: "d", Status: service.StatusPending},
	{ID: "5", Title: "e", Status: service.StatusCompleted},
}

func taskIDs(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterByStatus(t *testing.T) {
	tests := []struct {
		filter view.Filter
		want   []string
	}{
		{view.All, []string{"1", "2", "3", "4", "5"}},
		{view.Filter(service.StatusPending), []string{"1", "4"}},
		{view.Filter(service.StatusInProgress), []string{"3"}},
		{view.Filter(service.StatusCompleted), []string{"2", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := taskIDs(slices.Collect(view.FilterByStatus(sample, tt.filter)))
			if !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterByStatus_Restartable(t *testing.T) {
	seq := view.FilterByStatus(sample, view.Filter(service.StatusPending))

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("expected identical passes, got %v and %v", first, second)
	}
}

func TestFilterByStatus_StopsEarly(t *testing.T) {
	n := 0
	for range view.FilterByStatus(sample, view.All) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("expected to stop after 2, got %d", n)
	}
}

func TestFilterByStatus_Empty(t *testing.T) {
	if got := slices.Collect(view.FilterByStatus(nil, view.All)); len(got) != 0 {
		t.Errorf("expected no tasks, got %v", got)
	}
}

func TestGroupByStatus_AllKeysPresent(t *testing.T) {
	groups := view.GroupByStatus(view.FilterByStatus(nil, view.All))
	for _, st := range service.Statuses {
		g, ok := groups[st]
		if !ok {
			t.Errorf("missing key %q", st)
		}
		if len(g) != 0 {
			t.Errorf("expected empty bucket for %q, got %v", st, g)
		}
	}
}

func TestGroupByStatus_PartitionRoundTrip(t *testing.T) {
	groups := view.GroupByStatus(view.FilterByStatus(sample, view.All))

	if got := taskIDs(groups[service.StatusPending]); !slices.Equal(got, []string{"1", "4"}) {
		t.Errorf("pending: %v", got)
	}
	if got := taskIDs(groups[service.StatusCompleted]); !slices.Equal(got, []string{"2", "5"}) {
		t.Errorf("completed: %v", got)
	}

	var union []string
	for _, st := range service.Statuses {
		union = append(union, taskIDs(groups[st])...)
	}
	slices.Sort(union)
	want := taskIDs(sample)
	slices.Sort(want)
	if !slices.Equal(union, want) {
		t.Errorf("partition union %v does not match input %v", union, want)
	}
}

func TestCounts(t *testing.T) {
	counts := view.Counts(view.GroupByStatus(slices.Values(sample)))
	if counts[service.StatusPending] != 2 || counts[service.StatusInProgress] != 1 || counts[service.StatusCompleted] != 2 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    view.Filter
		wantErr bool
	}{
		{"all", view.All, false},
		{"ALL", view.All, false},
		{"", view.All, false},
		{"pending", view.Filter(service.StatusPending), false},
		{"In Progress", view.Filter(service.StatusInProgress), false},
		{"done", "", true},
	}
	for _, tt := range tests {
		got, err := view.ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilter_NextCycles(t *testing.T) {
	f := view.All
	var seen []view.Filter
	for range view.Filters {
		f = f.Next()
		seen = append(seen, f)
	}
	if seen[len(seen)-1] != view.All {
		t.Errorf("expected cycle to return to all, got %v", seen)
	}
}
