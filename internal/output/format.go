// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskboard/internal/service"
)

const (
	// ListSeparator is the separator line for board sections.
	ListSeparator = "------------"

	// ShortIDLen is the number of id characters shown in listings.
	ShortIDLen = 8
)

// FormatTask formats a task line for the list command.
// Format: "{N:>4}  {ID:<8}  {STATUS:<11}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %-*s  %-11s  %s\n", num, ShortIDLen, ShortID(task.ID), task.Status, normalizeTitle(task.Title))
}

// FormatTaskIndented formats a task line inside a board section.
// Format: "    {N:>4}  {ID:<8}  {TITLE}\n"
func FormatTaskIndented(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "    %4d  %-*s  %s\n", num, ShortIDLen, ShortID(task.ID), normalizeTitle(task.Title))
}

// FormatGroupHeader formats a board section header.
func FormatGroupHeader(w io.Writer, status service.Status, count int) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintf(w, "%s (%d)\n", status.Label(), count)
	fmt.Fprintln(w, ListSeparator)
}

// FormatStatusCount formats one line of the statuses command.
func FormatStatusCount(w io.Writer, status service.Status, count int) {
	fmt.Fprintf(w, "%-11s  %d\n", status, count)
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLen {
		return id
	}
	return id[:ShortIDLen]
}

// normalizeTitle replaces newlines with spaces so a task stays on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}
