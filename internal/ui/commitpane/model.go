package commitpane

import (
	"context"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/gitz/internal/config"
	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/keymap"
	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/patch"
	"github.com/andyrewlee/gitz/internal/perf"
	"github.com/andyrewlee/gitz/internal/search"
	"github.com/andyrewlee/gitz/internal/ui/common"
	"github.com/andyrewlee/gitz/internal/ui/textpane"
)

const (
	// chromeRows are the title row and the search row.
	chromeRows      = 2
	horizontalStep  = 4
	wheelScrollStep = 3
	toggleZoneID    = "commit-full-toggle"
	noMatchSuffix   = " no match"
)

// showFunc runs `git show`; swapped in tests.
type showFunc func(ctx context.Context, dir, sha, scope string) (string, error)

// Model is the commit pane: the selected commit's message, diffstat and
// patch, with an incremental search bar.
type Model struct {
	dir    string
	scope  string
	keymap keymap.KeyMap
	styles common.Styles
	show   showFunc
	zone   *zone.Manager

	text      *textpane.Model
	annotator *patch.Annotator

	// requested is the latest key asked for; shown is what the buffer holds.
	requested messages.CommitKey
	shown     messages.CommitKey
	loading   bool
	err       error

	engine   *search.Engine
	input    textinput.Model
	debounce *common.Debouncer
	missed   bool

	focused bool
	width   int
	height  int
}

// New creates the commit pane for cfg's repository.
func New(cfg *config.Config, km keymap.KeyMap) *Model {
	input := textinput.New()
	input.Prompt = "search: "

	return &Model{
		dir:       cfg.RepoDir,
		scope:     git.Scope(cfg.Pathspec),
		keymap:    km,
		styles:    common.DefaultStyles(),
		show:      git.Show,
		text:      textpane.New(messages.PaneCommit),
		annotator: patch.NewAnnotator(),
		engine:    search.NewEngine(),
		input:     input,
		debounce:  common.NewDebouncer("commit-search", cfg.SearchDebounce),
	}
}

// SetZone enables the clickable full-commit toggle.
func (m *Model) SetZone(z *zone.Manager) { m.zone = z }

// SetStyles updates chrome styles.
func (m *Model) SetStyles(s common.Styles) { m.styles = s }

// SetPalette updates the category palette.
func (m *Model) SetPalette(p common.Palette) { m.text.SetPalette(p) }

// SetSize sets the outer pane size including the border.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	inner := max(width-2, 0)
	m.input.SetWidth(max(inner-len(m.input.Prompt)-1-len(noMatchSuffix), 1))
	m.text.SetSize(inner, max(height-2-chromeRows, 0))
	return m.text.Annotate(m.annotator)
}

// Focus focuses the pane.
func (m *Model) Focus() {
	m.focused = true
	m.text.Focus()
}

// Blur removes focus from the pane and its search input.
func (m *Model) Blur() {
	m.focused = false
	m.text.Blur()
	m.input.Blur()
}

// Focused returns focus state.
func (m *Model) Focused() bool { return m.focused }

// SearchFocused reports whether keystrokes go to the search input.
func (m *Model) SearchFocused() bool { return m.input.Focused() }

// Shown returns the key of the displayed commit.
func (m *Model) Shown() messages.CommitKey { return m.shown }

// Buffer returns the displayed lines.
func (m *Model) Buffer() highlight.Buffer { return m.text.Buffer() }

// Text exposes the underlying surface.
func (m *Model) Text() *textpane.Model { return m.text }

// Err returns the last load error.
func (m *Model) Err() error { return m.err }

// Select requests hash, scoped by the configured pathspec. Asking for the
// key already requested is a no-op.
func (m *Model) Select(hash string) tea.Cmd {
	return m.request(messages.CommitKey{Hash: hash, Scope: m.scope})
}

// ToggleVisible reports whether the full-commit toggle applies: a scoped
// view of a commit is on screen.
func (m *Model) ToggleVisible() bool {
	return m.shown.Hash != "" && m.shown.Scope != "" && m.err == nil && m.requested == m.shown
}

// ShowFull reloads the current commit without the path scope.
func (m *Model) ShowFull() tea.Cmd {
	if !m.ToggleVisible() {
		return nil
	}
	return m.request(messages.CommitKey{Hash: m.shown.Hash})
}

func (m *Model) request(k messages.CommitKey) tea.Cmd {
	if k.Hash == "" || k == m.requested {
		return nil
	}
	m.requested = k
	m.loading = true
	dir, run := m.dir, m.show
	return common.SafeCmd(func() tea.Msg {
		text, err := run(context.Background(), dir, k.Hash, k.Scope)
		return messages.CommitLoaded{Key: k, Text: text, Err: err}
	})
}

// Update handles messages for the pane.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.CommitLoaded:
		return m, m.handleLoaded(msg)
	case messages.HighlightRetry:
		return m, m.text.Retry(msg, m.annotator)
	case common.DebounceFired:
		if m.debounce.Fired(msg) {
			return m, m.runSearch()
		}
	case tea.KeyPressMsg:
		if m.input.Focused() {
			return m, m.handleSearchKey(msg)
		}
		if m.focused {
			return m, m.handleKey(msg)
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft && m.toggleClicked(msg.Mouse()) {
			return m, m.ShowFull()
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.text.ScrollBy(-wheelScrollStep)
		case tea.MouseWheelDown:
			m.text.ScrollBy(wheelScrollStep)
		case tea.MouseWheelLeft:
			m.text.ScrollHorizontal(-horizontalStep)
		case tea.MouseWheelRight:
			m.text.ScrollHorizontal(horizontalStep)
		}
		return m, m.text.Annotate(m.annotator)
	}
	return m, nil
}

func (m *Model) handleLoaded(msg messages.CommitLoaded) tea.Cmd {
	if msg.Key != m.requested {
		logging.Debug("commit: dropping stale load of %s", msg.Key.Hash)
		return nil
	}
	m.loading = false
	m.shown = msg.Key
	m.missed = false
	if msg.Err != nil {
		m.err = msg.Err
		m.text.SetLines(nil)
		return common.ReportError("loading commit "+msg.Key.Hash, msg.Err, git.ErrorSummary(msg.Err))
	}
	m.err = nil
	sw := perf.Start("commit.populate")
	buf := m.text.SetText(msg.Text)
	sw.Step("text")
	m.text.Apply(m.annotator.Load(buf)...)
	sw.Step("header")
	cmd := m.text.Annotate(m.annotator)
	sw.Step("visible")
	return cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	page := max(m.text.Height()-1, 1)
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.text.ScrollBy(-1)
	case key.Matches(msg, m.keymap.Down):
		m.text.ScrollBy(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.text.ScrollBy(-page)
	case key.Matches(msg, m.keymap.PageDown):
		m.text.ScrollBy(page)
	case key.Matches(msg, m.keymap.Top):
		m.text.ScrollTo(0)
	case key.Matches(msg, m.keymap.Bottom):
		m.text.ScrollToBottom()
	case key.Matches(msg, m.keymap.Left):
		m.text.ScrollHorizontal(-horizontalStep)
	case key.Matches(msg, m.keymap.Right):
		m.text.ScrollHorizontal(horizontalStep)
	case key.Matches(msg, m.keymap.FullHistory):
		return m.ShowFull()
	case key.Matches(msg, m.keymap.SearchNext):
		return m.runSearch()
	default:
		return nil
	}
	return m.text.Annotate(m.annotator)
}

// OpenSearch moves keyboard input to the search bar.
func (m *Model) OpenSearch() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) handleSearchKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		return nil
	case "enter":
		m.debounce.Cancel()
		return m.runSearch()
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return tea.Batch(cmd, m.debounce.Bump())
	}
	return cmd
}

// runSearch searches for the input's query. Repeating the query continues
// after the previous match; an empty query clears every match.
func (m *Model) runSearch() tea.Cmd {
	defer perf.Time("commit.search")()
	out := m.engine.Search(m.text.Buffer(), m.input.Value())
	switch {
	case out.Cleared:
		m.missed = false
		m.text.ClearCategory(highlight.CategoryFound)
		return nil
	case out.Found:
		m.missed = false
		m.text.Apply(out.Span)
		m.text.ScrollToSpan(out.Span, true)
		return m.text.Annotate(m.annotator)
	default:
		m.missed = true
		return nil
	}
}

func (m *Model) toggleClicked(mouse tea.Mouse) bool {
	if m.zone == nil || !m.ToggleVisible() {
		return false
	}
	z := m.zone.Get(toggleZoneID)
	if z == nil || z.IsZero() {
		return false
	}
	return mouse.X >= z.StartX && mouse.X <= z.EndX && mouse.Y >= z.StartY && mouse.Y <= z.EndY
}

