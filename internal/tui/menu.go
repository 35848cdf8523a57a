package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuBatch menuChoice = iota
	menuSingle
	menuQuit
)

var menuItems = []string{
	"Generate batch",
	"Generate one user",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor  int
	version string
	workers int
	errMsg  string
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

// singleUserMsg tells the root to generate one user and show it.
type singleUserMsg struct{}

func newMenuModel(version string, workers int) menuModel {
	return menuModel{version: version, workers: workers}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuBatch:
		return func() tea.Msg { return navigateMsg{view: viewCount} }
	case menuSingle:
		return func() tea.Msg { return singleUserMsg{} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zfixture")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n\n", title, ver)

	for i, item := range menuItems {
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  > %s", item)) + "\n"
		} else {
			s += fmt.Sprintf("    %s\n", item)
		}
	}

	s += "\n  " + zstyle.MutedText.Render(fmt.Sprintf("%d workers", m.workers)) + "\n"
	if m.errMsg != "" {
		s += "\n  " + zstyle.StatusErr.Render(m.errMsg) + "\n"
	}
	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
