// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const msgPasswordsDiffer = "passwords do not match"

// PasswordModel is the Bubble Tea model reading a password with masked echo.
// With confirmation enabled the password is asked twice and both entries must
// match.
type PasswordModel struct {
	prompt  string
	confirm bool

	inputs []textinput.Model
	focus  int
	errMsg string

	done      bool
	cancelled bool
}

// NewPasswordModel creates a [PasswordModel] showing prompt. The first input
// receives focus immediately.
func NewPasswordModel(prompt string, confirm bool) *PasswordModel {
	count := 1
	if confirm {
		count = 2
	}

	inputs := make([]textinput.Model, count)
	for i := range inputs {
		in := textinput.New()
		in.CharLimit = 1024
		in.Width = 40
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
		inputs[i] = in
	}
	inputs[0].Focus()

	return &PasswordModel{
		prompt:  prompt,
		confirm: confirm,
		inputs:  inputs,
	}
}

// Init implements [tea.Model].
func (m *PasswordModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements [tea.Model]. Handled keys:
//   - esc, ctrl+c: cancels the prompt.
//   - enter      : moves to the confirmation input or submits.
//
// All other messages are forwarded to the focused input.
func (m *PasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *PasswordModel) submit() (tea.Model, tea.Cmd) {
	if m.focus < len(m.inputs)-1 {
		m.inputs[m.focus].Blur()
		m.focus++
		m.inputs[m.focus].Focus()
		return m, nil
	}

	if m.confirm && m.inputs[0].Value() != m.inputs[1].Value() {
		m.errMsg = msgPasswordsDiffer
		for i := range m.inputs {
			m.inputs[i].Reset()
			m.inputs[i].Blur()
		}
		m.focus = 0
		m.inputs[0].Focus()
		return m, nil
	}

	m.done = true
	return m, tea.Quit
}

// View implements [tea.Model].
func (m *PasswordModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt + ":"))
	b.WriteString(" ")
	b.WriteString(m.inputs[0].View())
	b.WriteString("\n")
	if m.confirm {
		b.WriteString(promptStyle.Render("Confirm:"))
		b.WriteString(" ")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter: submit │ esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the entered password.
func (m *PasswordModel) Value() string {
	return m.inputs[0].Value()
}

// Done reports whether the password was submitted.
func (m *PasswordModel) Done() bool {
	return m.done
}

// Cancelled reports whether the user left the prompt.
func (m *PasswordModel) Cancelled() bool {
	return m.cancelled
}
