package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

// maxBatch keeps interactive batches small enough to browse.
const maxBatch = 1_000_000

// countModel asks how many users to generate.
type countModel struct {
	input  textinput.Model
	errMsg string
}

// generateBatchMsg asks the root to generate n users.
type generateBatchMsg struct {
	n int
}

func newCountModel() countModel {
	ti := textinput.New()
	ti.Placeholder = "100"
	ti.Focus()
	ti.CharLimit = 7
	ti.Width = 20

	return countModel{input: ti}
}

func (m countModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m countModel) Update(msg tea.Msg) (countModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		// q is input here, only ctrl+c quits
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if msg.Type == tea.KeyEsc {
			return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m.handleSubmit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m countModel) handleSubmit() (countModel, tea.Cmd) {
	val := strings.TrimSpace(m.input.Value())
	if val == "" {
		val = m.input.Placeholder
	}

	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		m.errMsg = "enter a whole number of users"
		m.input.SetValue("")
		return m, nil
	}
	if n > maxBatch {
		m.errMsg = "at most " + strconv.Itoa(maxBatch) + " users at a time"
		return m, nil
	}

	m.errMsg = ""
	return m, func() tea.Msg { return generateBatchMsg{n: n} }
}

func (m countModel) View() string {
	s := "\n  how many users?\n  " + m.input.View() + "\n"

	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	} else {
		s += "\n\n"
	}
	return s
}
