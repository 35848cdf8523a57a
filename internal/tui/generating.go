package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zfixture/internal/identity"
)

// generatingModel shows a spinner while a batch runs.
type generatingModel struct {
	spinner spinner.Model
	n       int
}

// batchDoneMsg carries the result of a batch.
type batchDoneMsg struct {
	users   []identity.User
	elapsed time.Duration
	err     error
}

func newGeneratingModel(n int) generatingModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(zstyle.ZburnAccent)
	return generatingModel{spinner: sp, n: n}
}

func (m generatingModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m generatingModel) Update(msg tea.Msg) (generatingModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m generatingModel) View() string {
	return fmt.Sprintf("\n  %s generating %s users...\n\n", m.spinner.View(), humanize.Comma(int64(m.n)))
}
