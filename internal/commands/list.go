package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/view"
)

func init() {
	Register(&ListCmd{})
	Register(&BoardCmd{})
	Register(&StatusesCmd{})
}

// ListCmd implements the list command.
type ListCmd struct {
	status string
}

// SetStatus sets the --status filter (for testing).
func (c *ListCmd) SetStatus(status string) {
	c.status = status
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskboard list [--status all|<status>]" }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "all", "")
	fs.StringVar(&c.status, "s", "all", "")
}

// Run prints the filtered view. Numbers are positions in the unfiltered
// view so they can be passed back as task references.
func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	filter, err := view.ParseFilter(c.status)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", c.status)
		return exitcode.UserError
	}

	snapshot := env.Tasks.Tasks()
	positions := positionsOf(snapshot)
	found := false
	for task := range view.FilterByStatus(snapshot, filter) {
		output.FormatTask(out, positions[task.ID], task)
		found = true
	}

	if !found && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}

// BoardCmd implements the board command: the grouped view.
type BoardCmd struct{}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return nil }
func (c *BoardCmd) Synopsis() string  { return "Print tasks grouped by status" }
func (c *BoardCmd) Usage() string     { return "taskboard board" }
func (c *BoardCmd) NeedsAuth() bool   { return false }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	snapshot := env.Tasks.Tasks()
	positions := positionsOf(snapshot)

	groups := view.GroupByStatus(view.FilterByStatus(snapshot, view.All))
	for _, st := range service.Statuses {
		output.FormatGroupHeader(out, st, len(groups[st]))
		for _, task := range groups[st] {
			output.FormatTaskIndented(out, positions[task.ID], task)
		}
	}
	return exitcode.Success
}

// positionsOf maps task IDs to their 1-based row in the unfiltered view.
func positionsOf(snapshot []service.Task) map[string]int {
	positions := make(map[string]int, len(snapshot))
	for i, t := range snapshot {
		positions[t.ID] = i + 1
	}
	return positions
}

// StatusesCmd implements the statuses command.
type StatusesCmd struct{}

func (c *StatusesCmd) Name() string      { return "statuses" }
func (c *StatusesCmd) Aliases() []string { return nil }
func (c *StatusesCmd) Synopsis() string  { return "Print each status with its task count" }
func (c *StatusesCmd) Usage() string     { return "taskboard statuses" }
func (c *StatusesCmd) NeedsAuth() bool   { return false }

func (c *StatusesCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusesCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	counts := view.Counts(view.GroupByStatus(view.FilterByStatus(env.Tasks.Tasks(), view.All)))
	for _, st := range service.Statuses {
		output.FormatStatusCount(out, st, counts[st])
	}
	return exitcode.Success
}
