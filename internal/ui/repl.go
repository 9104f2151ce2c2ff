package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kangaroo/internal/repl"
	"kangaroo/internal/version"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

// replModel is the full-screen shell: a scrolling history above a prompt.
type replModel struct {
	ctx     context.Context
	cfg     repl.Config
	input   textinput.Model
	history []repl.Reply
	width   int
	height  int
	err     error
}

// NewREPLModel returns a Bubble Tea model running the interactive shell.
func NewREPLModel(ctx context.Context, cfg repl.Config) tea.Model {
	if cfg.Prompt == "" {
		cfg.Prompt = repl.DefaultPrompt
	}
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(cfg.Prompt)
	ti.Placeholder = "# name(args) = expr;"
	ti.Focus()
	return &replModel{
		ctx:    ctx,
		cfg:    cfg,
		input:  ti,
		width:  80,
		height: 24,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				return m, tea.Quit
			}
		case tea.KeyEnter:
			return m, m.submit()
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) submit() tea.Cmd {
	line := m.input.Value()
	m.input.SetValue("")
	if strings.TrimSpace(line) == "" {
		return nil
	}
	reply, err := repl.Eval(m.ctx, line, m.cfg.Options)
	if err != nil {
		m.err = err
		return tea.Quit
	}
	m.history = append(m.history, reply)
	return nil
}

// Err returns the error that ended the session, if any.
func (m *replModel) Err() error { return m.err }

func (m *replModel) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render(version.Banner()))
	b.WriteString("\n")
	b.WriteString("Welcome!")
	b.WriteString("\n")

	// шапка, подсказка и строка ввода занимают 4 строки
	lines := m.historyLines()
	if room := m.height - 4; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("enter: parse  esc/ctrl+c: quit"))
	return b.String()
}

func (m *replModel) historyLines() []string {
	out := make([]string, 0, 2*len(m.history))
	for _, reply := range m.history {
		out = append(out, promptStyle.Render(m.cfg.Prompt)+truncate(reply.Input, m.width-len(m.cfg.Prompt)))
		if reply.OK() {
			out = append(out, okStyle.Render(truncate(reply.Rendering, m.width)))
			continue
		}
		for _, msg := range reply.Errors {
			out = append(out, errStyle.Render(truncate(msg, m.width)))
		}
	}
	return out
}

// History returns the replies shown so far.
func (m *replModel) History() []repl.Reply {
	return m.history
}
