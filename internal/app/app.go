package app

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/gitz/internal/config"
	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/keymap"
	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/safego"
	"github.com/andyrewlee/gitz/internal/ui/commitpane"
	"github.com/andyrewlee/gitz/internal/ui/common"
	"github.com/andyrewlee/gitz/internal/ui/historypane"
	"github.com/andyrewlee/gitz/internal/ui/layout"
)

// App is the root Bubbletea model
type App struct {
	// Configuration
	config *config.Config
	keymap keymap.KeyMap

	// State
	focusedPane messages.PaneType

	// UI Components
	layout  *layout.Manager
	history *historypane.Model
	commit  *commitpane.Model
	zone    *zone.Manager

	// Overlays
	helpOverlay *common.HelpOverlay
	toast       *common.ToastModel

	// Repository watcher
	watcher     *git.RepoWatcher
	watcherCh   chan messages.RepoChanged
	watcherErr  error
	stopWatcher context.CancelFunc

	// Layout
	width, height int
	styles        common.Styles
	palette       common.Palette

	// Lifecycle
	ready        bool
	quitting     bool
	err          error
	shutdownOnce sync.Once
}

// New creates the root model for cfg. cfg.RepoDir must already be resolved.
func New(cfg *config.Config) *App {
	km := keymap.New(cfg.KeyMap)
	z := zone.New()

	a := &App{
		config:      cfg,
		keymap:      km,
		focusedPane: messages.PaneHistory,
		layout:      layout.NewManager(),
		history:     historypane.New(cfg, km),
		commit:      commitpane.New(cfg, km),
		zone:        z,
		helpOverlay: common.NewHelpOverlay(km),
		toast:       common.NewToastModel(),
	}
	a.history.SetZone(z)
	a.commit.SetZone(z)

	// Apply saved theme before creating styles
	warnUnknownStyles(cfg.UI)
	common.SetCurrentTheme(common.ThemeID(cfg.UI.Theme))
	a.applyTheme()
	a.focus(messages.PaneHistory)
	a.startRepoWatcher()
	return a
}

// Init loads the history and starts listening for ref changes.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		a.history.Load(),
		a.waitForRepoChange(),
	}
	if a.watcherErr != nil {
		cmds = append(cmds, a.toast.ShowWarning("Repository watching disabled; press "+a.keymap.Refresh.Help().Key+" to reload"))
	}
	return tea.Batch(cmds...)
}

// startRepoWatcher watches the repository's refs so the history follows
// commits, checkouts and fetches made outside gitz.
func (a *App) startRepoWatcher() {
	gitDir, err := git.GitDir(a.config.RepoDir)
	if err != nil {
		a.watcherErr = err
		logging.Warn("Repository watcher disabled: %v", err)
		return
	}

	ch := make(chan messages.RepoChanged, 1)
	watcher, err := git.NewRepoWatcher(gitDir, git.DefaultWatchDebounce, func() {
		select {
		case ch <- messages.RepoChanged{}:
		default:
			// A refresh is already pending.
		}
	})
	if err != nil {
		a.watcherErr = err
		logging.Warn("Repository watcher disabled: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.watcher = watcher
	a.watcherCh = ch
	a.stopWatcher = cancel
	safego.Go("git.repo-watcher", func() {
		if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
			logging.Warn("Repository watcher stopped: %v", err)
		}
	})
}

// waitForRepoChange blocks until the watcher reports a change.
func (a *App) waitForRepoChange() tea.Cmd {
	if a.watcherCh == nil {
		return nil
	}
	ch := a.watcherCh
	return func() tea.Msg {
		return <-ch
	}
}

// applyTheme rebuilds styles and the category palette from the current
// theme and pushes them to every component.
func (a *App) applyTheme() {
	theme := common.CurrentTheme()
	a.styles = common.StylesFor(theme)
	a.palette = common.PaletteFor(theme, a.config.UI.ChromaStyle)
	if unknown := a.palette.Override(a.config.Colors, theme.Colors.Background); len(unknown) > 0 {
		logging.Warn("Ignoring colors for unknown categories %v (known: %v)", unknown, highlight.Categories())
	}

	a.history.SetStyles(a.styles)
	a.history.SetPalette(a.palette)
	a.commit.SetStyles(a.styles)
	a.commit.SetPalette(a.palette)
	a.helpOverlay.SetStyles(a.styles)
	a.toast.SetStyles(a.styles)
}

// warnUnknownStyles logs configured theme or chroma style names that do not
// exist. Both fall back to the defaults.
func warnUnknownStyles(ui config.UISettings) {
	if ui.Theme != "" {
		known := false
		for _, th := range common.AvailableThemes() {
			known = known || string(th.ID) == ui.Theme
		}
		if !known {
			logging.Warn("Unknown theme %q, using %s", ui.Theme, common.GetTheme("").ID)
		}
	}
	if ui.ChromaStyle != "" && !common.ChromaStyleExists(ui.ChromaStyle) {
		logging.Warn("Unknown chroma style %q, using the theme palette", ui.ChromaStyle)
	}
}

// focus moves keyboard focus to pane.
func (a *App) focus(pane messages.PaneType) {
	a.focusedPane = pane
	switch pane {
	case messages.PaneCommit:
		a.history.Blur()
		a.commit.Focus()
	default:
		a.commit.Blur()
		a.history.Focus()
	}
}
