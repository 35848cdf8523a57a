package tui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zfixture/internal/identity"
)

// userField represents a labeled field for display and selection.
type userField struct {
	label string
	value string
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

// detailModel displays every field of one user.
type detailModel struct {
	user   identity.User
	fields []userField
	cursor int
	flash  string
	back   viewID
}

// sectionBreaks marks the first field of the address and device groups.
var sectionBreaks = map[int]bool{6: true, 10: true}

func newDetailModel(u identity.User, back viewID) detailModel {
	return detailModel{
		user:   u,
		fields: userFields(u),
		back:   back,
	}
}

func userFields(u identity.User) []userField {
	return []userField{
		{"id", u.UserID},
		{"username", u.UserName},
		{"name", u.FirstName + " " + u.LastName},
		{"age", strconv.Itoa(u.Age)},
		{"email", u.EmailAddress},
		{"phone", u.PhoneNumber},
		{"street", u.Address.StreetName + " " + u.Address.HouseNumber},
		{"post code", u.Address.PostCode},
		{"city", u.Address.City},
		{"country", u.Address.Country},
		{"ipv4", u.Device.IPv4Address},
		{"ipv6", u.Device.IPv6Address},
		{"mac", u.Device.MACAddress},
		{"device", u.Device.DeviceUUID},
		{"platform", u.Device.SystemTriplet},
	}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		back := m.back
		return m, func() tea.Msg { return navigateMsg{view: back} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.copy(m.fields[m.cursor].value, "copied!")
	}

	if msg.String() == "c" {
		data, err := json.MarshalIndent(m.user, "", "  ")
		if err != nil {
			m.flash = "encode: " + err.Error()
			return m, clearFlashAfter()
		}
		return m.copy(string(data), "copied json!")
	}

	return m, nil
}

func (m detailModel) copy(text, ok string) (detailModel, tea.Cmd) {
	if err := copyToClipboard(text); err != nil {
		m.flash = "copy: " + err.Error()
		return m, clearFlashAfter()
	}
	m.flash = ok
	return m, clearFlashAfter()
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}

func (m detailModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(zstyle.ZburnAccent).Bold(true)

	name := zstyle.Subtitle.Render(m.user.FirstName + " " + m.user.LastName)
	s := "\n  " + name + "\n\n"

	for i, f := range m.fields {
		if sectionBreaks[i] {
			s += "\n"
		}
		label := zstyle.MutedText.Render(fmt.Sprintf("%-10s", f.label))
		if i == m.cursor {
			s += "  " + accentStyle.Render("▸") + " " + label + " " + f.value + "\n"
		} else {
			s += "    " + label + " " + f.value + "\n"
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
