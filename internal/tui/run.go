package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/logging"
	"taskboard/internal/service"
)

// Run shows the board until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service, log *logging.Logger, in io.Reader, out io.Writer) error {
	model := NewModel(svc, log)
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
