// Package ui implements the interactive setup wizard used by
// `noggin init`.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nogginhq/noggin/cmd/noggin/internal/config"
)

type step int

const (
	stepInputs step = iota
	stepSummary
	stepDone
)

const (
	fieldBackend = iota
	fieldHost
	fieldPort
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldBackend: "Backend URL",
	fieldHost:    "Dev server host",
	fieldPort:    "Dev server port",
}

// KeyMap defines the wizard's keyboard shortcuts.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Enter key.Binding
	Back  key.Binding
	Quit  key.Binding
}

var defaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

var (
	primaryColor = lipgloss.Color("#6ea8fe")
	mutedColor   = lipgloss.Color("#94a3b8")
	errorColor   = lipgloss.Color("#ef4444")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	activeLabelStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// Model is the wizard's bubbletea state.
type Model struct {
	step         step
	inputs       [fieldCount]textinput.Model
	currentInput int
	errMsg       string
	quitting     bool
	accepted     bool
}

// NewModel builds the wizard pre-filled with cfg's current values.
func NewModel(cfg *config.Config) Model {
	backend := textinput.New()
	backend.Placeholder = "http://localhost:8000"
	backend.CharLimit = 200
	backend.Width = 40
	backend.SetValue(cfg.Backend.URL)
	backend.Focus()

	host := textinput.New()
	host.Placeholder = "localhost"
	host.CharLimit = 100
	host.Width = 40
	host.SetValue(cfg.Server.Host)

	port := textinput.New()
	port.Placeholder = "5173"
	port.CharLimit = 5
	port.Width = 10
	port.SetValue(strconv.Itoa(cfg.Server.Port))

	return Model{
		inputs: [fieldCount]textinput.Model{backend, host, port},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, defaultKeyMap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}

		switch m.step {
		case stepInputs:
			switch {
			case key.Matches(msg, defaultKeyMap.Next):
				m.focusInput((m.currentInput + 1) % fieldCount)
				return m, nil
			case key.Matches(msg, defaultKeyMap.Prev):
				m.focusInput((m.currentInput + fieldCount - 1) % fieldCount)
				return m, nil
			case key.Matches(msg, defaultKeyMap.Enter):
				if m.currentInput < fieldCount-1 {
					m.focusInput(m.currentInput + 1)
					return m, nil
				}
				if err := m.validate(); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
				m.errMsg = ""
				m.step = stepSummary
				return m, nil
			}

		case stepSummary:
			switch {
			case key.Matches(msg, defaultKeyMap.Enter):
				m.accepted = true
				m.step = stepDone
				return m, tea.Quit
			case key.Matches(msg, defaultKeyMap.Back):
				m.step = stepInputs
				return m, nil
			}
		}
	}

	if m.step == stepInputs {
		var cmd tea.Cmd
		m.inputs[m.currentInput], cmd = m.inputs[m.currentInput].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) focusInput(idx int) {
	m.inputs[m.currentInput].Blur()
	m.currentInput = idx
	m.inputs[idx].Focus()
}

func (m Model) validate() error {
	if v := strings.TrimSpace(m.inputs[fieldBackend].Value()); v != "" {
		if !strings.HasPrefix(v, "http://") && !strings.HasPrefix(v, "https://") {
			return fmt.Errorf("backend URL must start with http:// or https://")
		}
	}
	if v := strings.TrimSpace(m.inputs[fieldPort].Value()); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("port must be a number between 1 and 65535")
		}
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return labelStyle.Render("Setup cancelled.") + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Noggin project setup"))
	b.WriteString("\n")

	switch m.step {
	case stepInputs:
		for i := 0; i < fieldCount; i++ {
			label := labelStyle
			if i == m.currentInput {
				label = activeLabelStyle
			}
			b.WriteString(label.Render(fieldLabels[i]))
			b.WriteString("\n")
			b.WriteString(m.inputs[i].View())
			b.WriteString("\n\n")
		}
		if m.errMsg != "" {
			b.WriteString(errorStyle.Render("✗ " + m.errMsg))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("tab: next field • enter: confirm • ctrl+c: quit"))

	case stepSummary:
		cfg := m.Config()
		summary := fmt.Sprintf(
			"Backend URL:  %s\nServer host:  %s\nServer port:  %d",
			cfg.Backend.URL, cfg.Server.Host, cfg.Server.Port,
		)
		b.WriteString(boxStyle.Render(summary))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: write noggin.yaml • esc: back • ctrl+c: quit"))

	case stepDone:
		b.WriteString(labelStyle.Render("Configuration written."))
	}

	b.WriteString("\n")
	return b.String()
}

// Accepted reports whether the user confirmed the summary step.
func (m Model) Accepted() bool {
	return m.accepted
}

// Config returns the configuration assembled from the wizard's inputs.
// Blank fields fall back to the documented defaults.
func (m Model) Config() *config.Config {
	cfg := config.Default()
	if v := strings.TrimSpace(m.inputs[fieldBackend].Value()); v != "" {
		cfg.Backend.URL = strings.TrimSuffix(v, "/")
	}
	if v := strings.TrimSpace(m.inputs[fieldHost].Value()); v != "" {
		cfg.Server.Host = v
	}
	if v := strings.TrimSpace(m.inputs[fieldPort].Value()); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	return cfg
}
