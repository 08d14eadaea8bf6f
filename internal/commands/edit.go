package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&EditCmd{})
	Register(&StatusCmd{})
	Register(&DoneCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct {
	status string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title and/or status" }
func (c *EditCmd) Usage() string     { return "taskboard edit [--status <status>] <ref> [title...]" }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, rest, code := resolveArgs(env.Tasks, env.Log, args, errOut)
	if code != exitcode.Success {
		return code
	}

	var patch service.Patch
	if len(rest) > 0 {
		title := strings.Join(rest, " ")
		patch.Title = &title
	}
	if c.status != "" {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			return reportTaskError(errOut, env.Log, err)
		}
		patch.Status = &st
	}
	if patch.Title == nil && patch.Status == nil {
		fmt.Fprintln(errOut, "error: nothing to edit (give a new title or --status)")
		return exitcode.UserError
	}

	if _, err := env.Tasks.EditTask(task.ID, patch); err != nil {
		return reportTaskError(errOut, env.Log, err)
	}
	return printOK(cfg, out)
}

// StatusCmd implements the status command: the status selector.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"set"} }
func (c *StatusCmd) Synopsis() string  { return "Set a task's status" }
func (c *StatusCmd) Usage() string     { return "taskboard status <ref> <pending|in-progress|completed>" }
func (c *StatusCmd) NeedsAuth() bool   { return false }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, rest, code := resolveArgs(env.Tasks, env.Log, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: status required")
		return exitcode.UserError
	}
	return setStatus(cfg, env, task, strings.Join(rest, " "), out, errOut)
}

// DoneCmd implements the done command, shorthand for "status <ref> completed".
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "taskboard done <ref>" }
func (c *DoneCmd) NeedsAuth() bool   { return false }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, _, code := resolveArgs(env.Tasks, env.Log, args, errOut)
	if code != exitcode.Success {
		return code
	}
	return setStatus(cfg, env, task, string(service.StatusCompleted), out, errOut)
}

func setStatus(cfg *config.Config, env *Env, task service.Task, input string, out, errOut io.Writer) int {
	st, err := service.ParseStatus(input)
	if err != nil {
		return reportTaskError(errOut, env.Log, err)
	}
	if _, err := env.Tasks.EditTask(task.ID, service.StatusPatch(st)); err != nil {
		return reportTaskError(errOut, env.Log, err)
	}
	return printOK(cfg, out)
}
