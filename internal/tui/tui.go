// Package tui holds the terminal interactions of the command-line client:
// masked password prompts, yes/no confirmations and the secrets table.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/pass-the-salt/internal/logger"
)

// ErrUserQuit is returned when the user cancels a prompt.
var ErrUserQuit = errors.New("cancelled by user")

// TUI runs the interactive prompts on a terminal.
type TUI struct {
	in  io.Reader
	out io.Writer

	logger *logger.Logger
}

// New returns a [TUI] reading from stdin and drawing on stderr, so stdout
// stays reserved for secret output.
func New(log *logger.Logger) *TUI {
	return &TUI{in: os.Stdin, out: os.Stderr, logger: log}
}

// Password prompts for a password. With confirm it is asked twice.
func (t *TUI) Password(ctx context.Context, prompt string, confirm bool) (string, error) {
	final, err := t.run(ctx, NewPasswordModel(prompt, confirm))
	if err != nil {
		return "", err
	}

	m, ok := final.(*PasswordModel)
	if !ok {
		return "", tea.ErrProgramKilled
	}
	if m.Cancelled() || !m.Done() {
		return "", ErrUserQuit
	}
	return m.Value(), nil
}

// Confirm asks a yes/no question.
func (t *TUI) Confirm(ctx context.Context, question string) (bool, error) {
	final, err := t.run(ctx, NewConfirmModel(question))
	if err != nil {
		return false, err
	}

	m, ok := final.(*ConfirmModel)
	if !ok {
		return false, tea.ErrProgramKilled
	}
	return m.Answer(), nil
}

func (t *TUI) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	final, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out),
	).Run()
	if err != nil {
		t.logger.Err(err).Str("func", "*TUI.run").Msg("prompt failed")
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	return final, nil
}
