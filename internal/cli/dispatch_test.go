package cli_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"taskboard/internal/cli"
	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/logging"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/testutil"
)

// testFactory creates an exporter factory that returns the given FakeExporter.
func testFactory(exp *testutil.FakeExporter) cli.ExporterFactory {
	return func(ctx context.Context, cfg *config.Config, log *logging.Logger) (service.Exporter, error) {
		return exp, nil
	}
}

func newDispatcher(t *testing.T, factory cli.ExporterFactory) (*cli.Dispatcher, *store.Store) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	st := store.New(store.WithIDGenerator(testutil.SequentialIDs()))
	return cli.NewDispatcher(commands.DefaultRegistry, st, factory), st
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_NoArgsWithoutStdin(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr.String(), "no command given") {
		t.Errorf("unexpected stderr %q", stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if stdout.String() != "taskboard 0.1.0\n" {
		t.Errorf("expected 'taskboard 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagNeedsValue(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--status"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -status\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_CommandsShareStore(t *testing.T) {
	dispatcher, st := newDispatcher(t, nil)
	ctx := context.Background()

	var stdout, stderr bytes.Buffer
	for _, args := range [][]string{
		{"add", "Buy", "milk"},
		{"add", "--status", "completed", "Ship", "release"},
		{"move", "1", "completed", "1"},
	} {
		if code := dispatcher.Run(ctx, args, &stdout, &stderr); code != exitcode.Success {
			t.Fatalf("%v: exit %d, stderr %q", args, code, stderr.String())
		}
	}

	tasks := st.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].ID != "t1" || tasks[0].Status != service.StatusCompleted {
		t.Errorf("first task = %+v", tasks[0])
	}
}

func TestDispatcher_SettingsDefaultStatus(t *testing.T) {
	dispatcher, st := newDispatcher(t, nil)
	t.Setenv("TASKBOARD_DEFAULT_STATUS", "in-progress")

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--config", t.TempDir(), "x"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	if got := st.Tasks()[0].Status; got != service.StatusInProgress {
		t.Errorf("status = %s, want in-progress", got)
	}
}

func TestDispatcher_ExportUsesFactory(t *testing.T) {
	exp := testutil.NewFakeExporter()
	dispatcher, st := newDispatcher(t, testFactory(exp))
	st.AddTask("Buy milk", "")

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"export", "--list", "Groceries"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr.String())
	}
	calls := exp.Calls()
	if len(calls) != 1 || calls[0].ListName != "Groceries" || len(calls[0].Tasks) != 1 {
		t.Errorf("calls = %+v", calls)
	}
}

func TestDispatcher_ExportFactoryErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"auth", fmt.Errorf("%w: not logged in", service.ErrAuth), exitcode.AuthError, "error: auth error: not logged in"},
		{"backend", fmt.Errorf("dial tcp: refused"), exitcode.BackendError, "error: backend error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config, log *logging.Logger) (service.Exporter, error) {
				return nil, tt.err
			}
			dispatcher, _ := newDispatcher(t, factory)

			var stdout, stderr bytes.Buffer
			code := dispatcher.Run(context.Background(), []string{"export"}, &stdout, &stderr)

			if code != tt.wantCode {
				t.Errorf("expected exit code %d, got %d", tt.wantCode, code)
			}
			if !strings.HasPrefix(stderr.String(), tt.wantErr) {
				t.Errorf("expected prefix %q, got %q", tt.wantErr, stderr.String())
			}
		})
	}
}

func TestDispatcher_ExportWithoutFactory(t *testing.T) {
	dispatcher, _ := newDispatcher(t, nil)
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"export", "--config", dir}, &stdout, &stderr)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	expected := fmt.Sprintf("error: oauth_client.json not found in %s\n", dir)
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}
