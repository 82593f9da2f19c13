// Package tui implements the interactive notification tray built on
// bubbletea. The model renders store snapshots and forwards key-driven
// mutations back to the store, so everything on screen is whatever the
// store last published.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/store"
)

const (
	kindWidth         = 8
	stateWidth        = 2
	headerFooterLines = 4
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	unreadStyle   = lipgloss.NewStyle().Bold(true)
	readStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	footerStyle   = lipgloss.NewStyle().Faint(true)
)

// keyMap defines the key bindings for the tray.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	MarkRead key.Binding
	MarkAll  key.Binding
	Delete   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		MarkRead: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "mark read")),
		MarkAll:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "mark all read")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Refresh:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// snapshotMsg carries a store snapshot into the bubbletea loop.
type snapshotMsg store.Snapshot

// actionErrMsg reports a failed mutation.
type actionErrMsg struct{ err error }

// Model is the bubbletea model for the notification tray.
type Model struct {
	store     *store.Store
	ctx       context.Context
	snapshots <-chan store.Snapshot

	keys      keyMap
	spinner   spinner.Model
	snap      store.Snapshot
	cursor    int
	width     int
	height    int
	actionErr error
}

// NewModel creates a tray model fed by the given snapshot channel.
func NewModel(ctx context.Context, s *store.Store, snapshots <-chan store.Snapshot) *Model {
	if s == nil {
		panic("tui.NewModel: store dependency cannot be nil")
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		store:     s,
		ctx:       ctx,
		snapshots: snapshots,
		keys:      defaultKeyMap(),
		spinner:   sp,
		snap:      s.Snapshot(),
	}
}

// Init starts the spinner and the snapshot pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForSnapshot())
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.snapshots
		if !ok {
			return tea.Quit()
		}
		return snapshotMsg(snap)
	}
}

// Update handles bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		m.snap = store.Snapshot(msg)
		m.adjustCursorBounds()
		return m, m.waitForSnapshot()

	case actionErrMsg:
		m.actionErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Notifications)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.actionErr = nil
		return m, func() tea.Msg {
			m.store.Refresh(m.ctx)
			return nil
		}

	case key.Matches(msg, m.keys.MarkRead):
		n, ok := m.selected()
		if !ok || n.IsRead {
			return m, nil
		}
		m.actionErr = nil
		return m, m.runAction(func() error {
			return m.store.MarkAsRead(m.ctx, n.ID)
		})

	case key.Matches(msg, m.keys.MarkAll):
		m.actionErr = nil
		return m, m.runAction(func() error {
			_, err := m.store.MarkAllAsRead(m.ctx)
			return err
		})

	case key.Matches(msg, m.keys.Delete):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.actionErr = nil
		return m, m.runAction(func() error {
			return m.store.DeleteNotification(m.ctx, n.ID)
		})
	}

	return m, nil
}

func (m *Model) runAction(action func() error) tea.Cmd {
	return func() tea.Msg {
		if err := action(); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

func (m *Model) selected() (domain.Notification, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Notifications) {
		return domain.Notification{}, false
	}
	return m.snap.Notifications[m.cursor], true
}

func (m *Model) adjustCursorBounds() {
	if m.cursor >= len(m.snap.Notifications) {
		m.cursor = len(m.snap.Notifications) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the tray.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.snap.Notifications) == 0 {
		b.WriteString(readStyle.Render("No notifications"))
		b.WriteString("\n")
	} else {
		for i, n := range m.visibleRows() {
			b.WriteString(m.renderRow(n, m.rowOffset()+i == m.cursor))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader() string {
	title := fmt.Sprintf("Notifications · %d unread", m.snap.UnreadCount)
	if m.snap.IsLoading {
		title = m.spinner.View() + " " + title
	}
	header := headerStyle.Render(title)
	if m.snap.Err != nil {
		header += "  " + errorStyle.Render(fmt.Sprintf("sync failed: %v", m.snap.Err))
	}
	return header
}

// visibleRows windows the list around the cursor when the terminal is
// shorter than the list.
func (m *Model) visibleRows() []domain.Notification {
	rows := m.snap.Notifications
	max := m.maxRows()
	if max <= 0 || len(rows) <= max {
		return rows
	}
	offset := m.rowOffset()
	return rows[offset : offset+max]
}

func (m *Model) rowOffset() int {
	max := m.maxRows()
	if max <= 0 || len(m.snap.Notifications) <= max {
		return 0
	}
	offset := m.cursor - max/2
	if offset < 0 {
		offset = 0
	}
	if offset > len(m.snap.Notifications)-max {
		offset = len(m.snap.Notifications) - max
	}
	return offset
}

func (m *Model) maxRows() int {
	if m.height == 0 {
		return 0
	}
	return m.height - headerFooterLines
}

func (m *Model) renderRow(n domain.Notification, selected bool) string {
	marker := "●"
	style := unreadStyle
	if n.IsRead {
		marker = " "
		style = readStyle
	}

	row := fmt.Sprintf("%-*s %-*s %s  %s",
		stateWidth, marker,
		kindWidth, n.Kind.String(),
		n.CreatedAt.Format("15:04"),
		n.Title,
	)
	if m.width > 0 && lipgloss.Width(row) > m.width {
		row = row[:m.width]
	}

	if selected {
		return selectedStyle.Render(row)
	}
	return style.Render(row)
}

func (m *Model) renderFooter() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.MarkRead, m.keys.MarkAll,
		m.keys.Delete, m.keys.Refresh, m.keys.Quit,
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return footerStyle.Render(strings.Join(parts, " · "))
}
