package app

import (
	"fmt"
	"runtime/debug"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/perf"
	"github.com/andyrewlee/gitz/internal/ui/common"
	"github.com/andyrewlee/gitz/internal/ui/layout"
)

// Update handles all messages with panic recovery.
func (a *App) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("panic in app.Update: %v\n%s", r, debug.Stack())
			a.err = fmt.Errorf("internal error: %v", r)
			model = a
			cmd = nil
		}
	}()
	return a.update(msg)
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer perf.Time("update")()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a, a.resize(msg.Width, msg.Height)

	case tea.KeyPressMsg:
		return a, a.handleKey(msg)

	case tea.MouseClickMsg:
		if a.helpOverlay.Visible() {
			a.helpOverlay.Hide()
			return a, nil
		}
		pane := a.paneAt(msg.Mouse())
		a.focus(pane)
		return a, a.routeToPane(pane, msg)

	case tea.MouseWheelMsg:
		if a.helpOverlay.Visible() {
			a.helpOverlay, _ = a.helpOverlay.Update(msg)
			return a, nil
		}
		return a, a.routeToPane(a.paneAt(msg.Mouse()), msg)

	case messages.HistoryLoaded:
		if msg.Err == nil {
			a.err = nil
		}
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd

	case messages.CommitSelected:
		return a, a.commit.Select(msg.Hash)

	case messages.CommitLoaded:
		var cmd tea.Cmd
		a.commit, cmd = a.commit.Update(msg)
		return a, cmd

	case messages.HighlightRetry:
		return a, a.routeToPane(msg.Pane, msg)

	case common.DebounceFired:
		var hcmd, ccmd tea.Cmd
		a.history, hcmd = a.history.Update(msg)
		a.commit, ccmd = a.commit.Update(msg)
		return a, tea.Batch(hcmd, ccmd)

	case messages.RepoChanged:
		logging.Info("Repository refs changed; reloading history")
		return a, tea.Batch(a.history.Load(), a.waitForRepoChange())

	case messages.ToggleHelp:
		a.helpOverlay.Toggle()
		return a, nil

	case messages.Toast:
		return a, a.toast.ShowMessage(msg)

	case common.ToastDismissed:
		var cmd tea.Cmd
		a.toast, cmd = a.toast.Update(msg)
		return a, cmd

	case messages.Error:
		return a, a.handleErrorMessage(msg)
	}
	return a, nil
}

func (a *App) resize(width, height int) tea.Cmd {
	a.width, a.height = width, height
	a.layout.Resize(width, height)
	a.helpOverlay.SetSize(width, height)
	a.ready = true
	hw, hh := a.layout.HistorySize()
	cw, ch := a.layout.CommitSize()
	return tea.Batch(a.history.SetSize(hw, hh), a.commit.SetSize(cw, ch))
}

// inputFocused reports whether a text input owns the keyboard.
func (a *App) inputFocused() bool {
	return a.history.FilterFocused() || a.commit.SearchFocused()
}

func (a *App) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if a.helpOverlay.Visible() {
		a.helpOverlay, _ = a.helpOverlay.Update(msg)
		return nil
	}

	if a.inputFocused() {
		// Control-key quits work everywhere; plain keys belong to the input.
		if msg.String() == "ctrl+c" || (key.Matches(msg, a.keymap.Quit) && strings.HasPrefix(msg.String(), "ctrl+")) {
			return a.quit()
		}
		return a.routeToPane(a.focusedPane, msg)
	}

	switch {
	case msg.String() == "ctrl+c" || msg.String() == "esc" || key.Matches(msg, a.keymap.Quit):
		return a.quit()
	case key.Matches(msg, a.keymap.Help):
		a.helpOverlay.Toggle()
		return nil
	case key.Matches(msg, a.keymap.FocusNext):
		if a.focusedPane == messages.PaneHistory {
			a.focus(messages.PaneCommit)
		} else {
			a.focus(messages.PaneHistory)
		}
		return nil
	case key.Matches(msg, a.keymap.Refresh):
		return a.history.Load()
	case key.Matches(msg, a.keymap.Theme):
		return a.cycleTheme()
	case key.Matches(msg, a.keymap.Filter):
		a.focus(messages.PaneHistory)
		return a.history.FocusFilter()
	case key.Matches(msg, a.keymap.Search):
		a.focus(messages.PaneCommit)
		return a.commit.OpenSearch()
	}
	return a.routeToPane(a.focusedPane, msg)
}

func (a *App) routeToPane(pane messages.PaneType, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch pane {
	case messages.PaneCommit:
		a.commit, cmd = a.commit.Update(msg)
	default:
		a.history, cmd = a.history.Update(msg)
	}
	return cmd
}

// paneAt maps a screen cell to the pane drawn there.
func (a *App) paneAt(m tea.Mouse) messages.PaneType {
	hw, hh := a.layout.HistorySize()
	if a.layout.Mode() == layout.LayoutStacked {
		if m.Y >= hh {
			return messages.PaneCommit
		}
		return messages.PaneHistory
	}
	if m.X >= hw {
		return messages.PaneCommit
	}
	return messages.PaneHistory
}

func (a *App) cycleTheme() tea.Cmd {
	next := common.NextTheme(common.CurrentTheme().ID)
	common.SetCurrentTheme(next.ID)
	a.config.UI.Theme = string(next.ID)
	a.applyTheme()
	if err := a.config.SaveUISettings(); err != nil {
		logging.Warn("saving theme: %v", err)
	}
	return a.toast.ShowInfo("Theme: " + next.Name)
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	a.Shutdown()
	return tea.Quit
}
