package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"taskboard/internal/exitcode"
)

// Prompt is printed before each shell line when input is a terminal.
const Prompt = "taskboard> "

// ErrUnterminatedQuote is returned by SplitArgs for a line ending inside quotes.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// RunShell reads commands from in, one per line, and dispatches each against
// the dispatcher's store. Blank lines and lines starting with # are skipped.
// "exit" or "quit" (or EOF) ends the session.
//
// The exit code is that of the last command run, so a script fed on stdin
// reports whether its final step succeeded.
func (d *Dispatcher) RunShell(ctx context.Context, in io.Reader, out, errOut io.Writer) int {
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)
	code := exitcode.Success

	for {
		if interactive {
			fmt.Fprint(out, Prompt)
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return code
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		args, err := SplitArgs(line)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			code = exitcode.UserError
			continue
		}

		switch args[0] {
		case "exit", "quit":
			return code
		case "shell":
			fmt.Fprintln(errOut, "error: already in the shell")
			code = exitcode.UserError
			continue
		}

		code = d.Run(ctx, args, out, errOut)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: read input: %v\n", err)
		return exitcode.UserError
	}
	if interactive {
		fmt.Fprintln(out)
	}
	return code
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SplitArgs splits a shell line into arguments.
// Single and double quotes group words; a backslash escapes the next
// character outside single quotes.
func SplitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inArg   bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inArg = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}

	if quote != 0 || escaped {
		return nil, ErrUnterminatedQuote
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}
