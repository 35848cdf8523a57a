package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zfixture/internal/identity"
)

// listPage is the number of rows visible at once.
const listPage = 15

// listModel browses a generated batch.
type listModel struct {
	users   []identity.User
	cursor  int
	offset  int
	summary string
}

// viewUserMsg requests the detail view for one user.
type viewUserMsg struct {
	user identity.User
}

func newListModel(users []identity.User, summary string) listModel {
	return listModel{users: users, summary: summary}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	if msg.String() == "n" {
		return m, func() tea.Msg { return navigateMsg{view: viewCount} }
	}

	if len(m.users) == 0 {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.users)-1 {
			m.cursor++
		}
		if m.cursor >= m.offset+listPage {
			m.offset = m.cursor - listPage + 1
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		u := m.users[m.cursor]
		return m, func() tea.Msg { return viewUserMsg{user: u} }
	}

	return m, nil
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	s := "\n"
	if m.summary != "" {
		s += "  " + zstyle.StatusOK.Render(m.summary) + "\n\n"
	}

	if len(m.users) == 0 {
		s += "  " + zstyle.MutedText.Render("no users generated") + "\n\n"
		return s
	}

	end := min(m.offset+listPage, len(m.users))
	for i := m.offset; i < end; i++ {
		u := m.users[i]
		name := truncate(u.FirstName+" "+u.LastName, 22)
		email := truncate(u.EmailAddress, 32)
		place := truncate(u.Address.City+", "+u.Address.Country, 24)
		line := fmt.Sprintf("%-22s %-32s %s", name, email, place)

		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n  " + zstyle.MutedText.Render(fmt.Sprintf("%d / %d", m.cursor+1, len(m.users))) + "\n"
	return s
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
