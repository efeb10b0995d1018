package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	enginedto "focusguard/internal/modules/engine/dto"
	historydto "focusguard/internal/modules/history/dto"
	sessiondto "focusguard/internal/modules/session/dto"
	"focusguard/internal/ui/components"
	"focusguard/internal/ui/theme"
	focusview "focusguard/internal/ui/views/focus"
	historyview "focusguard/internal/ui/views/history"
)

type enginePort interface {
	Send(ctx context.Context, msg enginedto.Message) enginedto.Response
}

type historyPort interface {
	List(ctx context.Context) ([]historydto.EntryOutput, error)
}

type tabID int

const (
	tabFocus tabID = iota
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Focus", "History"}

type keyMap struct {
	Tab     key.Binding
	Toggle  key.Binding
	Start   key.Binding
	End     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Toggle:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle focus")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start session")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end session")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Start, k.End},
		{k.Tab, k.Refresh},
		{k.Help, k.Palette, k.Quit},
	}
}

// Model is the root dashboard: the focus panel, the history tab, the help
// overlay and the command palette. Every change goes through the engine.
type Model struct {
	focusView   focusview.Model
	historyView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(engine enginePort, history historyPort) Model {
	return Model{
		focusView:   focusview.New(engine),
		historyView: historyview.New(history),
		activeTab:   tabFocus,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.focusView.Init(), m.historyView.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case focusview.StateMsg:
		if !msg.Resp.Success {
			m.status = "error: " + msg.Resp.Error
		} else if msg.Resp.Ended != nil {
			m.status = fmt.Sprintf("session ended after %d min", msg.Resp.Ended.ActualDurationMinutes)
			cmds = append(cmds, m.historyView.Reload())
		} else if msg.Resp.Session != nil {
			m.status = fmt.Sprintf("session started: %d min", msg.Resp.Session.DurationMinutes)
		}
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		return m, tea.Batch(append(cmds, cmd)...)

	case historyview.EntriesLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.activeTab == tabHistory && m.historyView.Filtering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "f":
			return m, m.focusView.Send(enginedto.Message{Action: enginedto.ActionToggleBlocking})
		case "s":
			return m, m.focusView.Send(enginedto.Message{Action: enginedto.ActionStartWorkSession})
		case "e":
			return m, m.focusView.Send(enginedto.Message{Action: enginedto.ActionEndWorkSession})
		case "r":
			return m, tea.Batch(
				m.focusView.Send(enginedto.Message{Action: enginedto.ActionGetState}),
				m.historyView.Reload(),
			)
		}
	}

	// The focus panel keeps its countdown ticking while another tab is shown.
	if _, isKey := msg.(tea.KeyMsg); !isKey || m.activeTab == tabFocus {
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.activeTab == tabHistory {
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabHistory:
		content = m.historyView.View()
	default:
		content = m.focusView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "focusguard  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.focusView.IsBlocking() {
		left = theme.On.Render("● focus") + "  " + left
	}
	right := theme.Muted.Render("?:help  f:focus  s/e:session  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + theme.Bar.Width(m.width).Render(bar)
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	if strings.TrimSpace(input) == "history:refresh" {
		m.activeTab = tabHistory
		return m, m.historyView.Reload()
	}
	msg, err := parseCommand(input)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	return m, m.focusView.Send(msg)
}

// parseCommand turns a palette line into an engine message.
func parseCommand(input string) (enginedto.Message, error) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return enginedto.Message{}, fmt.Errorf("empty command")
	}
	switch parts[0] {
	case "focus:on", "focus:off":
		active := parts[0] == "focus:on"
		return enginedto.Message{Action: enginedto.ActionSetBlockingState, IsBlocking: &active}, nil
	case "focus:toggle":
		return enginedto.Message{Action: enginedto.ActionToggleBlocking}, nil
	case "blocklist:set":
		return enginedto.Message{Action: enginedto.ActionUpdateBlockList, BlockList: append([]string{}, parts[1:]...)}, nil
	case "reminder:set":
		if len(parts) != 2 {
			return enginedto.Message{}, fmt.Errorf("usage: reminder:set <minutes>")
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return enginedto.Message{}, fmt.Errorf("invalid minutes: %s", parts[1])
		}
		return enginedto.Message{Action: enginedto.ActionUpdateFocusReminderMinutes, Minutes: &minutes}, nil
	case "session:start":
		config := sessiondto.SessionConfig{}
		rest := parts[1:]
		if len(rest) > 0 {
			if minutes, err := strconv.Atoi(rest[0]); err == nil {
				config.DurationMinutes = &minutes
				rest = rest[1:]
			}
		}
		if len(rest) > 0 {
			intent := strings.Join(rest, " ")
			config.Intent = &intent
		}
		return enginedto.Message{Action: enginedto.ActionStartWorkSession, Config: &config}, nil
	case "session:end":
		return enginedto.Message{Action: enginedto.ActionEndWorkSession}, nil
	case "defaults:set":
		if len(parts) != 2 {
			return enginedto.Message{}, fmt.Errorf("usage: defaults:set <minutes>")
		}
		minutes, err := strconv.Atoi(parts[1])
		if err != nil {
			return enginedto.Message{}, fmt.Errorf("invalid minutes: %s", parts[1])
		}
		return enginedto.Message{Action: enginedto.ActionUpdateSessionDefaults, Config: &sessiondto.SessionConfig{DurationMinutes: &minutes}}, nil
	default:
		return enginedto.Message{}, fmt.Errorf("unknown command: %s", parts[0])
	}
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.historyView, _ = m.historyView.Update(sz)
}
