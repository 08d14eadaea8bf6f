// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Env carries the collaborators a command runs against.
type Env struct {
	// Tasks is the process-wide task store. Always set.
	Tasks service.Service

	// Exporter is set only for commands whose NeedsAuth returns true.
	Exporter service.Exporter

	// Log is scoped to the running command. Always set.
	Log *logging.Logger

	// In is the interactive input stream (used by the TUI).
	In io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to Google Tasks.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, env *Env, args []string, out, errOut io.Writer) int
}

// reportTaskError prints a store error and maps it to an exit code.
// Stale references are also logged.
func reportTaskError(errOut io.Writer, log *logging.Logger, err error) int {
	var ve *service.ValidationError
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "title" {
			fmt.Fprintf(errOut, "error: %s\n", ve.Reason)
		} else {
			fmt.Fprintf(errOut, "error: invalid %s: %s\n", ve.Field, ve.Value)
		}
		return exitcode.UserError
	case errors.As(err, &nf):
		log.WithTask(nf.ID).Info("stale task reference")
		fmt.Fprintf(errOut, "error: task not found: %s\n", nf.ID)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
}

// printOK prints the success marker unless quiet.
func printOK(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
