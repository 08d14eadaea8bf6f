package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&HelpCmd{})
	Register(&VersionCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskboard help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskboard                                           Start the interactive shell
  taskboard add [common flags] [--status <status>] <title...>
  taskboard create [common flags] [--status <status>] <title...>
  taskboard edit [common flags] [--status <status>] <ref> [title...]
  taskboard status [common flags] <ref> <status>
  taskboard done [common flags] <ref>
  taskboard move [common flags] <ref> <status> [position]
  taskboard rm [common flags] <ref>
  taskboard list [common flags] [--status all|<status>]
  taskboard board [common flags]
  taskboard statuses [common flags]
  taskboard snapshot [common flags] [--format yaml|json]
  taskboard export [common flags] [--list <list-name>]
  taskboard tui [common flags]
  taskboard login [common flags]
  taskboard logout [common flags]
  taskboard help
  taskboard version

Statuses: pending, in-progress, completed
A <ref> is a task number from 'list' or a task id (a unique prefix is enough).

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`

// VersionCmd implements the version command.
type VersionCmd struct{}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version" }
func (c *VersionCmd) Usage() string     { return "taskboard version" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "taskboard %s\n", Version)
	return exitcode.Success
}
