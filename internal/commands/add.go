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
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	status string
}

// SetStatus sets the --status flag value (for testing).
func (c *AddCmd) SetStatus(status string) {
	c.status = status
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "taskboard add [--status <status>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "", "")
	fs.StringVar(&c.status, "s", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	status := cfg.Settings.DefaultStatusValue()
	if c.status != "" {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			return reportTaskError(errOut, env.Log, err)
		}
		status = st
	}

	task, err := env.Tasks.AddTask(strings.Join(args, " "), status)
	if err != nil {
		return reportTaskError(errOut, env.Log, err)
	}

	env.Log.WithTask(task.ID).Info("task added", "status", string(task.Status))
	return printOK(cfg, out)
}
