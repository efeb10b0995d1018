package focus

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	enginedto "focusguard/internal/modules/engine/dto"
	"focusguard/internal/ui/theme"
)

type EnginePort interface {
	Send(ctx context.Context, msg enginedto.Message) enginedto.Response
}

// StateMsg carries the engine's answer to any message sent from this view.
type StateMsg struct {
	Resp enginedto.Response
}

type tickMsg time.Time

type Model struct {
	port   EnginePort
	state  enginedto.StateOutput
	loaded bool
	err    string
	now    time.Time
	width  int
	height int
}

func New(port EnginePort) Model {
	return Model{port: port, now: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Send(enginedto.Message{Action: enginedto.ActionGetState}), tick())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StateMsg:
		if !msg.Resp.Success {
			m.err = msg.Resp.Error
			return m, nil
		}
		m.err = ""
		if msg.Resp.State != nil {
			m.state = *msg.Resp.State
			m.loaded = true
			return m, nil
		}
		// Session and history replies carry no snapshot.
		return m, m.Send(enginedto.Message{Action: enginedto.ActionGetState})
	case tickMsg:
		m.now = time.Time(msg)
		if m.sessionRunning() && !m.now.Before(m.state.Session.EndTime) {
			return m, tea.Batch(tick(), m.Send(enginedto.Message{Action: enginedto.ActionGetState}))
		}
		return m, tick()
	}
	return m, nil
}

// Send posts msg to the engine and reports the reply as a StateMsg.
func (m Model) Send(msg enginedto.Message) tea.Cmd {
	return func() tea.Msg {
		return StateMsg{Resp: m.port.Send(context.Background(), msg)}
	}
}

func (m Model) IsBlocking() bool { return m.state.IsBlocking }

func (m Model) Err() string { return m.err }

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading state…"))
	}

	var sb strings.Builder
	if m.state.IsBlocking {
		sb.WriteString(theme.On.Render("● Focus mode ON") + "\n\n")
	} else {
		sb.WriteString(theme.Off.Render("○ Focus mode OFF") + "\n\n")
	}

	sb.WriteString(theme.Title.Render("Blocked sites") + "\n")
	if len(m.state.BlockList) == 0 {
		sb.WriteString(theme.Muted.Render("  none") + "\n")
	}
	for _, domain := range m.state.BlockList {
		sb.WriteString("  " + domain + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Distraction reminder") + "\n")
	switch {
	case m.state.FocusReminderMinutes == 0:
		sb.WriteString(theme.Muted.Render("  disabled") + "\n")
	case m.state.ReminderArmed:
		sb.WriteString(fmt.Sprintf("  every %d min while focus is off (armed)\n", m.state.FocusReminderMinutes))
	default:
		sb.WriteString(fmt.Sprintf("  every %d min while focus is off\n", m.state.FocusReminderMinutes))
	}

	sb.WriteString("\n" + theme.Title.Render("Work session") + "\n")
	sb.WriteString(m.renderSession())

	pane := theme.Pane
	if m.state.IsBlocking {
		pane = theme.PaneActive
	}
	w := m.width - 2
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, pane.Width(w).Render(sb.String()))
}

func (m Model) sessionRunning() bool {
	return m.state.Session != nil && m.state.Session.IsActive
}

func (m Model) renderSession() string {
	s := m.state.Session
	if !m.sessionRunning() {
		hint := "  no session running"
		if s != nil && s.ActualEndTime != nil {
			hint = fmt.Sprintf("  last session ended %s", s.ActualEndTime.Local().Format("15:04"))
		}
		return theme.Muted.Render(hint) + "\n"
	}
	remaining := s.EndTime.Sub(m.now).Round(time.Second)
	if remaining < 0 {
		remaining = 0
	}
	var sb strings.Builder
	if s.Intent != "" {
		sb.WriteString("  " + theme.Hot.Render(s.Intent) + "\n")
	}
	sb.WriteString(fmt.Sprintf("  %s left of %d min\n", formatClock(remaining), s.DurationMinutes))
	var reminders []string
	if s.EyeBreakEnabled {
		reminders = append(reminders, "eyes")
	}
	if s.WaterReminderEnabled {
		reminders = append(reminders, fmt.Sprintf("water/%dm", s.WaterReminderInterval))
	}
	if s.MovementReminderEnabled {
		reminders = append(reminders, fmt.Sprintf("movement/%dm", s.MovementReminderInterval))
	}
	if len(reminders) > 0 {
		sb.WriteString(theme.Muted.Render("  reminders: "+strings.Join(reminders, ", ")) + "\n")
	}
	return sb.String()
}

func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
