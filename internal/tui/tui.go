// Package tui implements the root Bubble Tea model for zfixture.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zfixture/internal/dispatch"
	"github.com/zarlcorp/zfixture/internal/identity"
)

type viewID int

const (
	viewMenu viewID = iota
	viewCount
	viewGenerating
	viewList
	viewDetail
)

// batchFunc generates n users.
type batchFunc func(ctx context.Context, n int) ([]identity.User, error)

// Model is the root TUI model.
type Model struct {
	ctx     context.Context
	version string
	workers int
	batch   batchFunc
	single  func() (identity.User, error)

	active     viewID
	menu       menuModel
	count      countModel
	generating generatingModel
	list       listModel
	detail     detailModel

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model. Batches run under ctx, so cancelling it
// stops a batch in flight. opts configure the dispatcher, which logs
// nowhere unless opts set a logger.
func New(ctx context.Context, version string, opts ...dispatch.Option) Model {
	opts = append([]dispatch.Option{dispatch.WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	d := dispatch.New(opts...)
	workers := d.Workers()

	return Model{
		ctx:     ctx,
		version: version,
		workers: workers,
		batch: func(ctx context.Context, n int) ([]identity.User, error) {
			return identity.GenerateUserData(ctx, n, opts...)
		},
		single: generateOne,
		active: viewMenu,
		menu:   newMenuModel(version, workers),
	}
}

func generateOne() (identity.User, error) {
	g, err := identity.New()
	if err != nil {
		return identity.User{}, err
	}
	return g.Generate()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case navigateMsg:
		return m.navigate(msg.view)

	case generateBatchMsg:
		m.generating = newGeneratingModel(msg.n)
		m.active = viewGenerating
		return m, tea.Batch(m.generating.Init(), m.runBatch(msg.n))

	case batchDoneMsg:
		return m.handleBatchDone(msg)

	case singleUserMsg:
		return m.handleSingle()

	case viewUserMsg:
		m.detail = newDetailModel(msg.user, viewList)
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m.updateActive(msg)
}

func (m Model) runBatch(n int) tea.Cmd {
	ctx, batch := m.ctx, m.batch
	return func() tea.Msg {
		started := time.Now()
		users, err := batch(ctx, n)
		return batchDoneMsg{users: users, elapsed: time.Since(started), err: err}
	}
}

func (m Model) handleBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.count = newCountModel()
		m.count.errMsg = "generate: " + msg.err.Error()
		m.active = viewCount
		return m, m.count.Init()
	}

	summary := fmt.Sprintf("generated %s users in %s",
		humanize.Comma(int64(len(msg.users))), msg.elapsed.Round(time.Millisecond))
	m.list = newListModel(msg.users, summary)
	m.active = viewList
	return m, tea.ClearScreen
}

func (m Model) handleSingle() (tea.Model, tea.Cmd) {
	u, err := m.single()
	if err != nil {
		m.menu.errMsg = "generate: " + err.Error()
		return m, nil
	}
	m.detail = newDetailModel(u, viewMenu)
	m.active = viewDetail
	return m, tea.ClearScreen
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		m.menu = newMenuModel(m.version, m.workers)
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewCount:
		m.count = newCountModel()
		m.active = viewCount
		return m, tea.Batch(m.count.Init(), tea.ClearScreen)

	case viewList:
		m.active = viewList
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewCount:
		m.count, cmd = m.count.Update(msg)
	case viewGenerating:
		m.generating, cmd = m.generating.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	// the menu includes the title, render directly
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewCount:
		content = m.count.View()
	case viewGenerating:
		content = m.generating.View()
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	}

	header := zstyle.RenderHeader("zfixture", viewTitle(m.active), zstyle.ZburnAccent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewCount:
		return "New Batch"
	case viewGenerating:
		return "Generating"
	case viewList:
		return "Users"
	case viewDetail:
		return "User"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewCount:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "generate"},
			{Key: "esc", Desc: "back"},
		}
	case viewGenerating:
		return []zstyle.HelpPair{
			{Key: "ctrl+c", Desc: "quit"},
		}
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "view"},
			{Key: "n", Desc: "new batch"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "enter", Desc: "copy field"},
			{Key: "c", Desc: "copy json"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}
