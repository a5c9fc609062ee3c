package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rhinobytesoftware/ilreader/il"
	"github.com/rhinobytesoftware/ilreader/metadata"
	"github.com/rhinobytesoftware/ilreader/opcode"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	targetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	handlerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseState int

const (
	stateList browseState = iota
	stateJump
)

type browseModel struct {
	err      error
	body     *il.Body
	filename string
	name     string
	status   string
	history  []int
	jump     textinput.Model
	cursor   int
	top      int
	height   int
	state    browseState
}

type fixtureLoadedMsg struct {
	err  error
	body *il.Body
	name string
}

func newBrowseModel(filename string) *browseModel {
	ti := textinput.New()
	ti.Prompt = "offset: "
	ti.Placeholder = "IL_0000, 0x0, #index or /mnemonic"
	ti.Width = 30
	return &browseModel{
		filename: filename,
		jump:     ti,
		height:   20,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	f, err := metadata.LoadFixtureFile(m.filename)
	if err != nil {
		return fixtureLoadedMsg{err: err}
	}
	body, err := f.Decode()
	if err != nil {
		return fixtureLoadedMsg{err: err}
	}
	return fixtureLoadedMsg{body: body, name: f.Name}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fixtureLoadedMsg:
		m.err = msg.err
		m.body = msg.body
		m.name = msg.name
		return m, nil

	case tea.WindowSizeMsg:
		// title, blank, status and help lines
		m.height = max(msg.Height-5, 1)
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		if m.state == stateJump {
			return m.updateJump(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.body == nil || m.body.Len() == 0 {
		return m, nil
	}

	m.status = ""
	switch msg.String() {
	case "up", "k":
		m.move(m.cursor - 1)
	case "down", "j":
		m.move(m.cursor + 1)
	case "pgup":
		m.move(m.cursor - m.height)
	case "pgdown":
		m.move(m.cursor + m.height)
	case "home":
		m.move(0)
	case "end":
		m.move(m.body.Len() - 1)

	case "enter", "right", "l":
		targets := m.body.Instructions[m.cursor].Targets()
		if len(targets) == 0 {
			m.status = "not a branch"
			break
		}
		// Switch tables follow their first case; the rest are listed inline.
		m.follow(targets[0])

	case "backspace", "left", "h":
		if n := len(m.history); n > 0 {
			m.move(m.history[n-1])
			m.history = m.history[:n-1]
		}

	case "g", ":":
		m.state = stateJump
		m.jump.SetValue("")
		return m, m.jump.Focus()
	}
	return m, nil
}

func (m *browseModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateList
		m.jump.Blur()
		return m, nil
	case "enter":
		m.state = stateList
		m.jump.Blur()
		idx, err := m.resolveJump(m.jump.Value())
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.follow(idx)
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

// resolveJump accepts IL_xxxx or hex offsets, #n instruction indices and
// /mnemonic searches.
func (m *browseModel) resolveJump(s string) (int, error) {
	if m.body == nil {
		return 0, fmt.Errorf("nothing loaded")
	}
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "/"); ok {
		return m.findOpcode(name)
	}
	if rest, ok := strings.CutPrefix(s, "#"); ok {
		idx, err := strconv.Atoi(rest)
		if err != nil || idx < 0 || idx >= m.body.Len() {
			return 0, fmt.Errorf("no instruction %s", s)
		}
		return idx, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "il_"), "0x")
	off, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad offset %q", s)
	}
	idx, ok := m.body.At(int(off))
	if !ok {
		return 0, fmt.Errorf("%s is not an instruction boundary", il.Label(int(off)))
	}
	return idx, nil
}

// findOpcode returns the next instruction after the cursor with the given
// mnemonic, wrapping around at the end of the body.
func (m *browseModel) findOpcode(name string) (int, error) {
	op, ok := opcode.ByName(name)
	if !ok {
		return 0, fmt.Errorf("unknown mnemonic %q", name)
	}
	n := m.body.Len()
	for i := 1; i <= n; i++ {
		idx := (m.cursor + i) % n
		if m.body.Instructions[idx].Opcode.Value == op.Value {
			return idx, nil
		}
	}
	return 0, fmt.Errorf("no %s in this body", op.Name)
}

func (m *browseModel) follow(idx int) {
	m.history = append(m.history, m.cursor)
	m.move(idx)
}

func (m *browseModel) move(idx int) {
	m.cursor = min(max(idx, 0), m.body.Len()-1)
	m.scroll()
}

func (m *browseModel) scroll() {
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.height {
		m.top = m.cursor - m.height + 1
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.body == nil {
		return "Loading fixture..."
	}

	var b strings.Builder
	title := m.name
	if title == "" {
		title = m.filename
	}
	b.WriteString(titleStyle.Render("ildis"))
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n\n")

	if m.body.Len() == 0 {
		b.WriteString("empty method body\n")
	}

	var targets map[int]bool
	if m.body.Len() > 0 {
		targets = make(map[int]bool)
		for _, t := range m.body.Instructions[m.cursor].Targets() {
			targets[t] = true
		}
	}

	end := min(m.top+m.height, m.body.Len())
	for i := m.top; i < end; i++ {
		ins := &m.body.Instructions[i]
		line := il.Describe(m.body, ins, nil)
		marker := m.regionMarker(i)
		switch {
		case i == m.cursor:
			b.WriteString(selectedStyle.Render("> " + line))
		case targets[i]:
			b.WriteString(targetStyle.Render("* " + line))
		default:
			b.WriteString("  " + line)
		}
		if marker != "" {
			b.WriteString(" ")
			b.WriteString(handlerStyle.Render(marker))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateJump {
		b.WriteString(m.jump.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc cancel"))
		return b.String()
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • enter follow • backspace back • g goto • q quit"))
	return b.String()
}

// regionMarker names the exception regions that start at instruction i.
func (m *browseModel) regionMarker(i int) string {
	var parts []string
	for n, h := range m.body.Handlers {
		if h.TryStart == i {
			parts = append(parts, fmt.Sprintf("try#%d", n))
		}
		if h.FilterStart == i {
			parts = append(parts, fmt.Sprintf("filter#%d", n))
		}
		if h.HandlerStart == i {
			parts = append(parts, fmt.Sprintf("%s#%d", h.Clause.Kind, n))
		}
	}
	return strings.Join(parts, " ")
}

func runBrowse(filename string) error {
	p := tea.NewProgram(newBrowseModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
