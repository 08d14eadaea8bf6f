// Package exitcode defines the process exit codes taskboard returns.
//
// Every command maps its outcome onto one of these; the interactive shell
// reports the code of the last command it ran.
package exitcode

const (
	// Success: the command completed, including idempotent no-ops such as
	// deleting an unknown id.
	Success = 0

	// UserError: bad arguments, a blank title, an invalid status or a task
	// reference that names nothing.
	UserError = 1

	// AuthError: missing OAuth client, missing or revoked token, or a
	// cancelled login.
	AuthError = 2

	// BackendError: the Google Tasks export failed on the network or API side.
	BackendError = 3
)
