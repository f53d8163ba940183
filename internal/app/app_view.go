package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/gitz/internal/keymap"
	"github.com/andyrewlee/gitz/internal/perf"
	"github.com/andyrewlee/gitz/internal/ui/common"
)

// View renders the two panes and the status line.
func (a *App) View() tea.View {
	defer perf.Time("view")()

	view := tea.View{
		AltScreen:       true,
		MouseMode:       tea.MouseModeCellMotion,
		BackgroundColor: common.ColorBackground(),
		ForegroundColor: common.ColorForeground(),
	}
	switch {
	case a.quitting:
		view.SetContent("")
		return view
	case !a.ready:
		view.SetContent("Loading...")
		return view
	}

	if a.helpOverlay.Visible() {
		view.SetContent(lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, a.helpOverlay.View()))
		return view
	}

	content := a.layout.Render(a.history.View(), a.commit.View(), a.statusLine())
	view.SetContent(a.zone.Scan(content))
	return view
}

// statusLine shows the toast, the last error or the key hints.
func (a *App) statusLine() string {
	switch {
	case a.toast.Visible():
		return a.toast.View()
	case a.err != nil:
		return a.styles.Error.MaxWidth(a.width).Render(a.err.Error())
	case !a.config.UI.ShowKeymapHints:
		return ""
	}
	km := a.keymap
	hints := []common.HelpBinding{
		{Key: keymap.BindingHint(km.Quit), Desc: "quit"},
		{Key: keymap.PairHint(km.Up, km.Down), Desc: "move"},
		{Key: keymap.BindingHint(km.FocusNext), Desc: "pane"},
		{Key: keymap.BindingHint(km.Filter), Desc: "filter"},
		{Key: keymap.BindingHint(km.Search), Desc: "search"},
		{Key: keymap.BindingHint(km.CopyHash), Desc: "copy"},
		{Key: keymap.BindingHint(km.Refresh), Desc: "reload"},
		{Key: keymap.BindingHint(km.Help), Desc: "help"},
	}
	return common.RenderHelpBar(a.styles, hints, a.width)
}
