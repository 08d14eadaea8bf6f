package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

func init() {
	Register(&SnapshotCmd{})
}

// Snapshot is the document written by the snapshot command.
type Snapshot struct {
	Tasks []service.Task `json:"tasks" yaml:"tasks"`
}

// SnapshotCmd implements the snapshot command.
type SnapshotCmd struct {
	format string
}

// SetFormat sets the --format flag value (for testing).
func (c *SnapshotCmd) SetFormat(format string) {
	c.format = format
}

func (c *SnapshotCmd) Name() string      { return "snapshot" }
func (c *SnapshotCmd) Aliases() []string { return []string{"dump"} }
func (c *SnapshotCmd) Synopsis() string  { return "Print every task in canonical order" }
func (c *SnapshotCmd) Usage() string     { return "taskboard snapshot [--format yaml|json]" }
func (c *SnapshotCmd) NeedsAuth() bool   { return false }

func (c *SnapshotCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "yaml", "")
}

func (c *SnapshotCmd) Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int {
	doc := Snapshot{Tasks: env.Tasks.Tasks()}
	if doc.Tasks == nil {
		doc.Tasks = []service.Task{}
	}

	switch c.format {
	case "yaml", "":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			fmt.Fprintf(errOut, "error: encode snapshot: %v\n", err)
			return exitcode.UserError
		}
		if err := enc.Close(); err != nil {
			fmt.Fprintf(errOut, "error: encode snapshot: %v\n", err)
			return exitcode.UserError
		}
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			fmt.Fprintf(errOut, "error: encode snapshot: %v\n", err)
			return exitcode.UserError
		}
	default:
		fmt.Fprintf(errOut, "error: unknown format: %s (want yaml or json)\n", c.format)
		return exitcode.UserError
	}
	return exitcode.Success
}
