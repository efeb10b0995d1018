package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	historydto "focusguard/internal/modules/history/dto"
	"focusguard/internal/ui/theme"
)

type HistoryPort interface {
	List(ctx context.Context) ([]historydto.EntryOutput, error)
}

type EntriesLoadedMsg struct {
	Entries []historydto.EntryOutput
	Err     error
}

type entryItem struct {
	entry historydto.EntryOutput
}

func (i entryItem) Title() string {
	if i.entry.Intent != "" {
		return i.entry.Intent
	}
	return "Work session"
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%s  %d/%d min  %s",
		i.entry.StartTime.Local().Format("Mon 02 Jan 15:04"),
		i.entry.ActualDurationMinutes,
		i.entry.DurationMinutes,
		i.entry.CompletedReason,
	)
}

func (i entryItem) FilterValue() string { return i.entry.Intent }

type Model struct {
	port    HistoryPort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port HistoryPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Last 7 days"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{port: port, list: l, detail: vp, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case EntriesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Last 7 days: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Entries))
		for i, e := range msg.Entries {
			items[i] = entryItem{entry: e}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Title = fmt.Sprintf("Last 7 days: %d min focused", totalMinutes(msg.Entries))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading history…")
	}
	listW := m.width / 2
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.port.List(context.Background())
		return EntriesLoadedMsg{Entries: entries, Err: err}
	}
}

func (m *Model) resize() {
	listW := m.width / 2
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(entryItem)
	if !ok {
		return theme.Muted.Render("No sessions in the last 7 days")
	}
	e := item.entry
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(item.Title()) + "\n\n")
	sb.WriteString(theme.Muted.Render("started:  ") + e.StartTime.Local().Format("2006-01-02 15:04") + "\n")
	sb.WriteString(theme.Muted.Render("ended:    ") + e.ActualEndTime.Local().Format("2006-01-02 15:04") + "\n")
	sb.WriteString(fmt.Sprintf("%s%d of %d min\n", theme.Muted.Render("focused:  "), e.ActualDurationMinutes, e.DurationMinutes))
	sb.WriteString(theme.Muted.Render("reason:   ") + e.CompletedReason + "\n")
	sb.WriteString(theme.Muted.Render("eyes:     ") + onOff(e.EyeBreakEnabled, 0) + "\n")
	sb.WriteString(theme.Muted.Render("water:    ") + onOff(e.WaterReminderEnabled, e.WaterReminderInterval) + "\n")
	sb.WriteString(theme.Muted.Render("movement: ") + onOff(e.MovementReminderEnabled, e.MovementReminderInterval) + "\n")
	return sb.String()
}

func onOff(enabled bool, interval int) string {
	switch {
	case !enabled:
		return "off"
	case interval > 0:
		return fmt.Sprintf("every %d min", interval)
	default:
		return "on"
	}
}

func totalMinutes(entries []historydto.EntryOutput) int {
	total := 0
	for _, e := range entries {
		total += e.ActualDurationMinutes
	}
	return total
}
