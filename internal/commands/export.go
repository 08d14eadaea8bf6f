package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	list string
}

// SetList sets the --list flag value (for testing).
func (c *ExportCmd) SetList(list string) {
	c.list = list
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return []string{"push"} }
func (c *ExportCmd) Synopsis() string  { return "Publish the board to a Google Tasks list" }
func (c *ExportCmd) Usage() string     { return "taskboard export [--list <list-name>]" }
func (c *ExportCmd) NeedsAuth() bool   { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.list, "list", "", "")
	fs.StringVar(&c.list, "l", "", "")
}

// Run replaces the contents of the remote list with the current snapshot.
func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	listName := strings.TrimSpace(c.list)
	if listName == "" {
		listName = cfg.Settings.Export.ListName
	}
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	snapshot := env.Tasks.Tasks()
	if err := env.Exporter.Export(ctx, listName, snapshot); err != nil {
		if errors.Is(err, service.ErrAuth) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		env.Log.Info("export failed", "list", listName, "error", err)
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	env.Log.Info("export complete", "list", listName, "tasks", len(snapshot))
	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(snapshot), listName)
	}
	return exitcode.Success
}
