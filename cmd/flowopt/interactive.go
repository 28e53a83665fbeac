package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"

	"github.com/wippyai/flowopt/ast"
	"github.com/wippyai/flowopt/listing"
	"github.com/wippyai/flowopt/optimizer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	methodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	stageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	codeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// stage is the listing of one method after a pipeline step.
type stage struct {
	name string
	text string
}

type methodTrace struct {
	err    error
	name   string
	stages []stage
}

type modelState int

const (
	stateSelectMethod modelState = iota
	stateShowStages
)

type interactiveModel struct {
	err       error
	filter    textinput.Model
	opts      options
	methods   []*methodTrace
	visible   []*methodTrace
	selected  int
	stage     int
	scroll    int
	height    int
	state     modelState
	filtering bool
	loaded    bool
}

func newInteractiveModel(opts options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "method name"
	ti.Prompt = "/ "
	ti.Width = 40

	return &interactiveModel{
		opts:   opts,
		filter: ti,
		state:  stateSelectMethod,
		height: 24,
	}
}

type loadedMsg struct {
	err     error
	methods []*methodTrace
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.load
}

// load runs the pipeline and records a listing of every method after each
// completed step.
func (m *interactiveModel) load() tea.Msg {
	src, err := readInput(m.opts.in)
	if err != nil {
		return loadedMsg{err: err}
	}
	prog, err := listing.Parse(src)
	if prog == nil {
		return loadedMsg{err: err}
	}

	var current *methodTrace
	o := optimizer.New(optimizer.Config{
		AbortBefore: m.opts.stop,
		Verify:      m.opts.verify,
		OnStep: func(s optimizer.Step, method *ast.Method) {
			current.stages = append(current.stages, stage{name: s.String(), text: listing.FormatMethod(method)})
		},
	})

	var traces []*methodTrace
	for _, method := range prog.Methods {
		if m.opts.method != "" && method.Name != m.opts.method {
			continue
		}
		current = &methodTrace{
			name:   method.Name,
			stages: []stage{{name: "input", text: listing.FormatMethod(method)}},
		}
		current.err = o.Optimize(method)
		traces = append(traces, current)
	}

	// Parse failures of individual methods are shown as the load error.
	if errs := multierr.Errors(err); len(errs) > 0 {
		return loadedMsg{err: err, methods: traces}
	}
	return loadedMsg{methods: traces}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "/":
			if m.state == stateSelectMethod {
				m.filtering = true
				return m, m.filter.Focus()
			}

		case "r":
			m.loaded = false
			return m, m.load

		case "up", "k":
			switch m.state {
			case stateSelectMethod:
				if m.selected > 0 {
					m.selected--
				}
			case stateShowStages:
				if m.scroll > 0 {
					m.scroll--
				}
			}

		case "down", "j":
			switch m.state {
			case stateSelectMethod:
				if m.selected < len(m.visible)-1 {
					m.selected++
				}
			case stateShowStages:
				m.scroll++
			}

		case "left", "h":
			if m.state == stateShowStages && m.stage > 0 {
				m.stage--
				m.scroll = 0
			}

		case "right", "l", "tab":
			if m.state == stateShowStages && m.stage < len(m.current().stages)-1 {
				m.stage++
				m.scroll = 0
			}

		case "enter":
			if m.state == stateSelectMethod && len(m.visible) > 0 {
				m.state = stateShowStages
				m.stage = len(m.current().stages) - 1
				m.scroll = 0
			}

		case "esc":
			if m.state == stateShowStages {
				m.state = stateSelectMethod
			}
		}

	case loadedMsg:
		m.err = msg.err
		m.methods = msg.methods
		m.loaded = true
		m.applyFilter()
		if m.state == stateShowStages && len(m.visible) == 0 {
			m.state = stateSelectMethod
		}
		if m.state == stateShowStages {
			m.stage = min(m.stage, len(m.current().stages)-1)
		}
	}

	return m, nil
}

func (m *interactiveModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, t := range m.methods {
		if query == "" || strings.Contains(strings.ToLower(t.name), query) {
			m.visible = append(m.visible, t)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() *methodTrace {
	return m.visible[m.selected]
}

func (m *interactiveModel) View() string {
	if !m.loaded {
		return "Running pipeline..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("flowopt"))
	b.WriteString(" ")
	b.WriteString(m.opts.in)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectMethod:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
		}
		if m.filtering || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		if len(m.visible) == 0 {
			b.WriteString("No methods.\n")
		}
		for i, t := range m.visible {
			line := t.name
			if t.err != nil {
				line += "  " + errorStyle.Render("failed")
			} else {
				line = methodStyle.Render(line)
			}
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + t.name))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / filter • r reload • q quit"))

	case stateShowStages:
		t := m.current()
		b.WriteString(methodStyle.Render(t.name))
		b.WriteString("\n")
		for i, s := range t.stages {
			if i == m.stage {
				b.WriteString(selectedStyle.Render(" " + s.name + " "))
			} else {
				b.WriteString(stageStyle.Render(s.name))
			}
		}
		b.WriteString("\n\n")

		lines := strings.Split(t.stages[m.stage].text, "\n")
		// Title, tabs, help and spacing take eight lines.
		page := max(m.height-8, 1)
		m.scroll = min(m.scroll, max(len(lines)-page, 0))
		end := min(m.scroll+page, len(lines))
		b.WriteString(codeStyle.Render(strings.Join(lines[m.scroll:end], "\n")))
		b.WriteString("\n")

		if t.err != nil && m.stage == len(t.stages)-1 {
			b.WriteString("\n")
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", t.err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("←/→ step • ↑/↓ scroll • esc back • r reload • q quit"))
	}

	return b.String()
}

func runInteractive(opts options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
