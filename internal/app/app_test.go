package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gitz/internal/config"
	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/ui/common"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		Paths:   config.PathsAt(filepath.Join(root, "home")),
		UI:      config.UISettings{ShowKeymapHints: true, Theme: "zenburn"},
		RepoDir: root,
	}
	a := New(cfg)
	t.Cleanup(func() {
		a.Shutdown()
		common.SetCurrentTheme(common.ThemeZenburn)
	})
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return a
}

func press(a *App, s string) tea.Cmd {
	r := []rune(s)[0]
	_, cmd := a.Update(tea.KeyPressMsg{Code: r, Text: s})
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNonRepositoryDisablesWatcher(t *testing.T) {
	a := newTestApp(t)
	if a.watcherErr == nil || a.waitForRepoChange() != nil {
		t.Fatalf("watcher should be disabled outside a repository")
	}
	a.View()
	if !a.ready || a.history.View() == "" {
		t.Fatalf("app should render after the first resize")
	}
}

func TestQuitKeys(t *testing.T) {
	a := newTestApp(t)
	if !isQuit(press(a, "q")) {
		t.Fatalf("q should quit")
	}

	a = newTestApp(t)
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !isQuit(cmd) {
		t.Fatalf("esc should quit when no input is focused")
	}
}

func TestInputSwallowsPlainQuitKey(t *testing.T) {
	a := newTestApp(t)
	press(a, "/")
	if !a.history.FilterFocused() {
		t.Fatalf("/ should focus the filter")
	}
	if isQuit(press(a, "q")) {
		t.Fatalf("q inside the filter must not quit")
	}
	_, cmd := a.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if isQuit(cmd) || a.history.FilterFocused() {
		t.Fatalf("esc should only leave the filter")
	}

	press(a, "/")
	_, cmd = a.Update(tea.KeyPressMsg{Code: 'q', Mod: tea.ModCtrl})
	if !isQuit(cmd) {
		t.Fatalf("ctrl+q should quit from the filter")
	}
}

func TestFocusSwitching(t *testing.T) {
	a := newTestApp(t)
	if a.focusedPane != messages.PaneHistory || !a.history.Focused() {
		t.Fatalf("history should start focused")
	}
	a.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if a.focusedPane != messages.PaneCommit || !a.commit.Focused() || a.history.Focused() {
		t.Fatalf("tab should focus the commit pane")
	}
	a.Update(tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl})
	if !a.commit.SearchFocused() {
		t.Fatalf("ctrl+f should open the search bar")
	}
}

func TestHelpOverlay(t *testing.T) {
	a := newTestApp(t)
	press(a, "?")
	if !a.helpOverlay.Visible() || !strings.Contains(a.helpOverlay.View(), "gitz keys") {
		t.Fatalf("? should show help")
	}
	if isQuit(press(a, "q")) {
		t.Fatalf("keys close the overlay instead of acting")
	}
	if a.helpOverlay.Visible() {
		t.Fatalf("any key should close help")
	}
}

func TestCommitSelectedRequestsShow(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(messages.CommitSelected{Hash: "abcdef1"})
	if cmd == nil {
		t.Fatalf("selection should start a load")
	}
	_, cmd = a.Update(messages.CommitSelected{Hash: "abcdef1"})
	if cmd != nil {
		t.Fatalf("repeated selection should be ignored")
	}
}

func TestRepoChangedReloads(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(messages.RepoChanged{})
	if cmd == nil {
		t.Fatalf("ref change should reload the history")
	}
}

func TestThemeCyclePersists(t *testing.T) {
	a := newTestApp(t)
	press(a, "t")
	if common.CurrentTheme().ID == common.ThemeZenburn {
		t.Fatalf("theme did not change")
	}
	data, err := os.ReadFile(a.config.Paths.ConfigPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if !strings.Contains(string(data), string(common.CurrentTheme().ID)) {
		t.Fatalf("config does not record theme: %s", data)
	}
}

func TestErrorShownInStatusLine(t *testing.T) {
	a := newTestApp(t)
	a.Update(messages.Error{Err: os.ErrNotExist, Context: "test", Logged: true})
	if !strings.Contains(a.statusLine(), os.ErrNotExist.Error()) {
		t.Fatalf("status line = %q", a.statusLine())
	}
}

func TestStatusLineShowsMoveHint(t *testing.T) {
	a := newTestApp(t)
	if got := ansi.Strip(a.statusLine()); !strings.Contains(got, "k/j") {
		t.Fatalf("status line = %q, want the move hint", got)
	}
}

func TestConfiguredColorsOverridePalette(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		Paths:   config.PathsAt(filepath.Join(root, "home")),
		UI:      config.UISettings{Theme: "zenburn"},
		RepoDir: root,
		Colors:  map[string]string{"sha": "#ff0000", "branch": "#00ff00"},
	}
	a := New(cfg)
	t.Cleanup(a.Shutdown)

	r, g, b, _ := a.palette[highlight.CategorySHA].Fg.RGBA()
	if r>>8 != 0xff || g>>8 != 0 || b>>8 != 0 {
		t.Fatalf("sha fg = %02x%02x%02x, want ff0000", r>>8, g>>8, b>>8)
	}
}

func TestNonRepositoryShowsErrorInHistoryPane(t *testing.T) {
	a := newTestApp(t)
	msg := a.history.Load()()
	a.Update(msg)
	if got := ansi.Strip(a.history.View()); !strings.Contains(strings.ToLower(got), "not a git repository") {
		t.Fatalf("history pane = %q, want the git error", got)
	}
	if a.history.Buffer().Len() != 0 {
		t.Fatalf("history pane should be empty")
	}
}
