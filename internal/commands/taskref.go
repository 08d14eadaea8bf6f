package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// TaskRef is a parsed task reference: either a 1-based number into the
// "all" listing or an id (or unique id prefix).
type TaskRef struct {
	Num int
	ID  string
}

// IsNumber reports whether the reference is positional.
func (r TaskRef) IsNumber() bool { return r.ID == "" }

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrOutOfRange indicates a task number past the end of the listing.
	ErrOutOfRange = errors.New("task number out of range")

	// ErrAmbiguousRef indicates an id prefix matching several tasks.
	ErrAmbiguousRef = errors.New("ambiguous task reference")
)

// ParseTaskRef parses the first positional argument as a task reference.
//
//  1. No args → ErrTaskRefRequired
//  2. All digits → numeric reference into `taskboard list`
//  3. Anything else → id or id prefix
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	first := strings.TrimSpace(args[0])
	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{Num: num}, nil
	}
	return TaskRef{ID: first}, nil
}

// isAllDigits returns true if s consists only of digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef finds the task a reference points at.
// Unknown ids yield a *service.NotFoundError.
func ResolveTaskRef(svc service.Service, ref TaskRef) (service.Task, error) {
	if ref.IsNumber() {
		tasks := svc.Tasks()
		if ref.Num < 1 || ref.Num > len(tasks) {
			return service.Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, ref.Num)
		}
		return tasks[ref.Num-1], nil
	}

	if task, err := svc.Task(ref.ID); err == nil {
		return task, nil
	}

	var matches []service.Task
	for _, t := range svc.Tasks() {
		if strings.HasPrefix(t.ID, ref.ID) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return service.Task{}, &service.NotFoundError{ID: ref.ID}
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("%w: %s", ErrAmbiguousRef, ref.ID)
	}
}

// resolveArgs parses and resolves the reference in args[0] and returns the
// remaining arguments. On failure it prints the error and returns a
// non-success exit code.
func resolveArgs(svc service.Service, log *logging.Logger, args []string, errOut io.Writer) (service.Task, []string, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	task, err := ResolveTaskRef(svc, ref)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return service.Task{}, nil, reportTaskError(errOut, log, err)
		}
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, nil, exitcode.UserError
	}
	return task, args[1:], exitcode.Success
}
