package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel asks a yes/no question. Anything but y/Y is a no.
type ConfirmModel struct {
	question string
	answer   bool
	done     bool
}

// NewConfirmModel creates a [ConfirmModel] for question.
func NewConfirmModel(question string) *ConfirmModel {
	return &ConfirmModel{question: question}
}

// Init implements [tea.Model].
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements [tea.Model].
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.answer = true
	case "n", "N", "enter", "esc", "ctrl+c":
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

// View implements [tea.Model].
func (m *ConfirmModel) View() string {
	if m.done {
		return ""
	}
	return promptStyle.Render(m.question) + " " + helpStyle.Render("[y/N]") + "\n"
}

// Answer reports whether the user accepted.
func (m *ConfirmModel) Answer() bool {
	return m.answer
}
