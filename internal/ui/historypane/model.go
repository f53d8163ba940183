package historypane

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"

	"github.com/andyrewlee/gitz/internal/config"
	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/history"
	"github.com/andyrewlee/gitz/internal/keymap"
	"github.com/andyrewlee/gitz/internal/logging"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/perf"
	"github.com/andyrewlee/gitz/internal/ui/common"
	"github.com/andyrewlee/gitz/internal/ui/textpane"
)

const (
	// chromeRows are the title and filter rows above the log.
	chromeRows      = 2
	horizontalStep  = 4
	wheelScrollStep = 3
)

// logFunc runs `git log`; swapped in tests.
type logFunc func(ctx context.Context, dir string, pathspec []string) (string, error)

// Model is the history pane: a filter input above the decorated commit
// graph. Moving the cursor onto a commit line selects that commit.
type Model struct {
	dir      string
	pathspec []string
	keymap   keymap.KeyMap
	styles   common.Styles
	log      logFunc

	text      *textpane.Model
	annotator *highlight.Annotator
	filter    textinput.Model
	debounce  *common.Debouncer

	all      []string
	query    string
	selected string
	seq      int
	loading  bool
	err      error

	focused bool
	width   int
	height  int
}

// New creates the history pane for cfg's repository.
func New(cfg *config.Config, km keymap.KeyMap) *Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"

	return &Model{
		dir:       cfg.RepoDir,
		pathspec:  cfg.Pathspec,
		keymap:    km,
		styles:    common.DefaultStyles(),
		log:       git.Log,
		text:      textpane.New(messages.PaneHistory),
		annotator: highlight.NewAnnotator(history.Rules()),
		filter:    filter,
		debounce:  common.NewDebouncer("history-filter", cfg.FilterDebounce),
	}
}

// SetZone enables click selection.
func (m *Model) SetZone(z *zone.Manager) { m.text.SetZone(z, "history-") }

// SetStyles updates chrome styles.
func (m *Model) SetStyles(s common.Styles) { m.styles = s }

// SetPalette updates the category palette.
func (m *Model) SetPalette(p common.Palette) { m.text.SetPalette(p) }

// SetSize sets the outer pane size including the border.
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	inner := max(width-2, 0)
	m.filter.SetWidth(max(inner-3, 1))
	m.text.SetSize(inner, max(height-2-chromeRows, 0))
	return m.text.Annotate(m.annotator)
}

// Focus focuses the pane.
func (m *Model) Focus() {
	m.focused = true
	m.text.Focus()
}

// Blur removes focus from the pane and its filter input.
func (m *Model) Blur() {
	m.focused = false
	m.text.Blur()
	m.filter.Blur()
}

// Focused returns focus state.
func (m *Model) Focused() bool { return m.focused }

// FilterFocused reports whether keystrokes go to the filter input.
func (m *Model) FilterFocused() bool { return m.filter.Focused() }

// Selected returns the hash of the selected commit.
func (m *Model) Selected() string { return m.selected }

// Buffer returns the displayed lines.
func (m *Model) Buffer() highlight.Buffer { return m.text.Buffer() }

// Text exposes the underlying surface.
func (m *Model) Text() *textpane.Model { return m.text }

// Err returns the last load error.
func (m *Model) Err() error { return m.err }

// Load runs `git log` off the event loop. Results of earlier loads are
// dropped when they arrive.
func (m *Model) Load() tea.Cmd {
	m.seq++
	m.loading = true
	seq, dir, pathspec, run := m.seq, m.dir, m.pathspec, m.log
	return common.SafeCmd(func() tea.Msg {
		text, err := run(context.Background(), dir, pathspec)
		return messages.HistoryLoaded{Seq: seq, Text: text, Err: err}
	})
}

// Update handles messages for the pane.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.HistoryLoaded:
		return m, m.handleLoaded(msg)
	case messages.HighlightRetry:
		return m, m.text.Retry(msg, m.annotator)
	case common.DebounceFired:
		if m.debounce.Fired(msg) {
			return m, m.applyFilter(m.filter.Value())
		}
	case tea.KeyPressMsg:
		if m.filter.Focused() {
			return m, m.handleFilterKey(msg)
		}
		if m.focused {
			return m, m.handleKey(msg)
		}
	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			mouse := msg.Mouse()
			if line, ok := m.text.LineAtMouse(mouse.X, mouse.Y); ok {
				return m, m.moveTo(line)
			}
		}
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.text.ScrollBy(-wheelScrollStep)
		case tea.MouseWheelDown:
			m.text.ScrollBy(wheelScrollStep)
		}
		return m, m.text.Annotate(m.annotator)
	}
	return m, nil
}

func (m *Model) handleLoaded(msg messages.HistoryLoaded) tea.Cmd {
	if msg.Seq != m.seq {
		logging.Debug("history: dropping stale load %d (latest %d)", msg.Seq, m.seq)
		return nil
	}
	m.loading = false
	if msg.Err != nil {
		m.err = msg.Err
		m.all = nil
		m.selected = ""
		m.text.SetLines(nil)
		return common.ReportError("loading history", msg.Err, git.ErrorSummary(msg.Err))
	}
	m.err = nil
	defer perf.Time("history.populate")()
	m.all = highlight.SplitLines(msg.Text)
	logging.Info("history: %d lines", len(m.all))
	return m.render(true)
}

// render rebuilds the buffer from the log and the applied filter. The
// selection moves to HEAD after a load and stays on the selected commit
// after filtering when it is still listed. The target line is scrolled to
// the top of the pane.
func (m *Model) render(toHead bool) tea.Cmd {
	buf := m.text.SetLines(history.FilterLines(m.all, m.query))
	m.annotator.Reset(buf)

	target, found := 0, false
	if !toHead && m.selected != "" {
		target, found = indexOfHash(buf.Lines(), m.selected)
	}
	if !found {
		target, _ = history.FindHead(buf.Lines())
	}
	m.text.ScrollTo(target)
	return m.moveTo(target)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	page := max(m.text.Height()-1, 1)
	switch {
	case key.Matches(msg, m.keymap.Up):
		return m.moveTo(m.text.Cursor() - 1)
	case key.Matches(msg, m.keymap.Down):
		return m.moveTo(m.text.Cursor() + 1)
	case key.Matches(msg, m.keymap.PageUp):
		return m.moveTo(m.text.Cursor() - page)
	case key.Matches(msg, m.keymap.PageDown):
		return m.moveTo(m.text.Cursor() + page)
	case key.Matches(msg, m.keymap.Top):
		return m.moveTo(0)
	case key.Matches(msg, m.keymap.Bottom):
		return m.moveTo(m.text.Buffer().Len() - 1)
	case key.Matches(msg, m.keymap.Left):
		m.text.ScrollHorizontal(-horizontalStep)
	case key.Matches(msg, m.keymap.Right):
		m.text.ScrollHorizontal(horizontalStep)
	case key.Matches(msg, m.keymap.JumpHead):
		if line, ok := history.FindHead(m.text.Buffer().Lines()); ok {
			return m.moveTo(line)
		}
	case key.Matches(msg, m.keymap.CopyHash):
		return common.CopyCmd(m.selected, "hash")
	case key.Matches(msg, m.keymap.Filter):
		return m.FocusFilter()
	}
	return nil
}

// FocusFilter moves keyboard input to the filter.
func (m *Model) FocusFilter() tea.Cmd {
	return m.filter.Focus()
}

func (m *Model) handleFilterKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filter.Blur()
		return nil
	case "enter":
		m.debounce.Cancel()
		m.filter.Blur()
		return m.applyFilter(m.filter.Value())
	}
	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		return tea.Batch(cmd, m.debounce.Bump())
	}
	return cmd
}

func (m *Model) applyFilter(query string) tea.Cmd {
	if query == m.query {
		return nil
	}
	m.query = query
	defer perf.Time("history.filter")()
	return m.render(false)
}

// moveTo puts the cursor on line and selects its commit. Graph-only lines
// move the cursor but keep the current selection.
func (m *Model) moveTo(line int) tea.Cmd {
	buf := m.text.Buffer()
	if buf.Len() == 0 {
		return nil
	}
	m.text.SetCursor(line)
	cursor := m.text.Cursor()
	annotate := m.text.Annotate(m.annotator)

	span, ok := history.SelectionSpan(cursor, buf.Line(cursor))
	if !ok {
		return annotate
	}
	m.text.ClearCategory(highlight.CategorySelected)
	m.text.Apply(span)
	hash := buf.Line(cursor)[span.Start:span.End]
	m.selected = hash
	return tea.Batch(annotate, func() tea.Msg {
		return messages.CommitSelected{Hash: hash}
	})
}

func indexOfHash(lines []string, hash string) (int, bool) {
	for i, line := range lines {
		if !strings.Contains(line, hash) {
			continue
		}
		if history.ParseLine(line).HashText() == hash {
			return i, true
		}
	}
	return 0, false
}

