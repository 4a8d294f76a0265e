package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/asc-runtime/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type inspectorModel struct {
	err      error
	eng      *engine.Engine
	instance *engine.Instance
	filename string
	exports  []string
	history  []dump
	input    textinput.Model
}

type loadedMsg struct {
	err  error
	eng  *engine.Engine
	inst *engine.Instance
}

func newInspectorModel(filename string) *inspectorModel {
	ti := textinput.New()
	ti.Placeholder = "offset, e.g. 1044 or 0x414"
	ti.Prompt = "ptr: "
	ti.Width = 30
	ti.Focus()
	return &inspectorModel{filename: filename, input: ti}
}

func (m *inspectorModel) Init() tea.Cmd {
	return tea.Batch(m.load, textinput.Blink)
}

func (m *inspectorModel) load() tea.Msg {
	ctx := context.Background()

	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	eng, err := engine.New(ctx, nil)
	if err != nil {
		return loadedMsg{err: err}
	}
	inst, err := eng.Instantiate(ctx, data, "guest")
	if err != nil {
		_ = eng.Close(ctx)
		return loadedMsg{err: err}
	}
	return loadedMsg{eng: eng, inst: inst}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.eng != nil {
				_ = m.eng.Close(context.Background())
			}
			return m, tea.Quit

		case "enter":
			if m.instance == nil {
				return m, nil
			}
			m.err = nil
			ptr, err := parseOffset(m.input.Value())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.history = append([]dump{inspect(m.instance.Heap(), ptr)}, m.history...)
			if len(m.history) > 5 {
				m.history = m.history[:5]
			}
			m.input.SetValue("")
			return m, nil
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.eng = msg.eng
		m.instance = msg.inst
		m.exports = msg.inst.Exports()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inspectorModel) View() string {
	if m.instance == nil {
		if m.err != nil {
			return errStyle.Render(fmt.Sprintf("Error: %v\n\nPress esc to quit.", m.err))
		}
		return "Loading module..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("ASC Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "memory: %d bytes\n", m.instance.Heap().Size())
	names := make([]string, len(m.exports))
	for i, name := range m.exports {
		names[i] = funcStyle.Render(name)
	}
	fmt.Fprintf(&b, "exports: %s\n\n", strings.Join(names, ", "))

	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	for _, d := range m.history {
		b.WriteString(renderDump(d, true))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter inspect • esc quit"))
	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInspectorModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
