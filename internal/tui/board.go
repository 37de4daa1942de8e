package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ukprmenbersaku-abc/help-study/internal/planner"
)

func RunBoard(ctx context.Context, svc *planner.Service, deadlineLimit int, out io.Writer) error {
	m := newBoardModel(ctx, svc, deadlineLimit)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
