package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&MoveCmd{})
}

// MoveCmd implements the move command: the drag-and-drop transition.
type MoveCmd struct{}

func (c *MoveCmd) Name() string      { return "move" }
func (c *MoveCmd) Aliases() []string { return []string{"mv"} }
func (c *MoveCmd) Synopsis() string  { return "Move a task to a status group position" }
func (c *MoveCmd) Usage() string     { return "taskboard move <ref> <status> [position]" }
func (c *MoveCmd) NeedsAuth() bool   { return false }

func (c *MoveCmd) RegisterFlags(fs *flag.FlagSet) {}

// Run moves the task. position is 1-based within the destination group and
// defaults to the end of the group; out-of-range positions are clamped.
func (c *MoveCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	task, rest, code := resolveArgs(env.Tasks, env.Log, args, errOut)
	if code != exitcode.Success {
		return code
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: status required")
		return exitcode.UserError
	}
	if len(rest) > 2 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[2])
		return exitcode.UserError
	}

	status, err := service.ParseStatus(rest[0])
	if err != nil {
		return reportTaskError(errOut, env.Log, err)
	}

	index := math.MaxInt
	if len(rest) == 2 {
		pos, err := strconv.Atoi(rest[1])
		if err != nil || pos < 1 {
			fmt.Fprintf(errOut, "error: invalid position: %s\n", rest[1])
			return exitcode.UserError
		}
		index = pos - 1
	}

	if _, err := env.Tasks.MoveTask(task.ID, status, index); err != nil {
		return reportTaskError(errOut, env.Log, err)
	}
	return printOK(cfg, out)
}
