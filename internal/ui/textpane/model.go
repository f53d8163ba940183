package textpane

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/messages"
	"github.com/andyrewlee/gitz/internal/ui/common"
)

const (
	tabWidth = 4
	// maxRetries bounds the degenerate-viewport retry loop for one buffer.
	maxRetries = 20
)

// Annotator produces spans for the visible part of a buffer.
type Annotator interface {
	AnnotateVisible(buf highlight.Buffer, vr highlight.VisibleRange) ([]highlight.Span, error)
}

// Model is a read-only, scrollable text surface that renders highlight
// spans with a category palette.
type Model struct {
	pane    messages.PaneType
	buf     highlight.Buffer
	version int
	layer   *highlight.Layer
	palette common.Palette

	width  int
	height int
	top    int
	left   int

	cursor  int
	focused bool
	retries int

	zone       *zone.Manager
	zonePrefix string
}

// New creates an empty pane surface.
func New(pane messages.PaneType) *Model {
	return &Model{
		pane:    pane,
		layer:   highlight.NewLayer(),
		palette: common.PaletteFor(common.CurrentTheme(), ""),
	}
}

// SetZone enables per-line mouse zones under prefix.
func (m *Model) SetZone(z *zone.Manager, prefix string) {
	m.zone = z
	m.zonePrefix = prefix
}

// SetPalette sets the category palette.
func (m *Model) SetPalette(p common.Palette) { m.palette = p }

// SetSize sets the content area in cells.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = max(width, 0), max(height, 0)
	m.clampScroll()
}

// Width returns the content width.
func (m *Model) Width() int { return m.width }

// Height returns the content height.
func (m *Model) Height() int { return m.height }

// SetShowCursor toggles rendering of the cursor line.

// Focus marks the surface focused.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus.
func (m *Model) Blur() { m.focused = false }

// Focused returns focus state.
func (m *Model) Focused() bool { return m.focused }

// SetText replaces the contents with text and returns the new buffer. Tabs
// are expanded and control characters replaced so byte offsets match what
// is drawn.
func (m *Model) SetText(text string) highlight.Buffer {
	return m.SetLines(highlight.SplitLines(text))
}

// SetLines replaces the contents with lines.
func (m *Model) SetLines(lines []string) highlight.Buffer {
	clean := make([]string, len(lines))
	for i, line := range lines {
		clean[i] = sanitize(line)
	}
	m.version++
	m.buf = highlight.NewBuffer(clean, m.version)
	m.layer.Reset()
	m.top, m.left, m.cursor, m.retries = 0, 0, 0, 0
	return m.buf
}

// Buffer returns the current contents.
func (m *Model) Buffer() highlight.Buffer { return m.buf }

// Version returns the current buffer version.
func (m *Model) Version() int { return m.version }

// Layer exposes the applied spans.
func (m *Model) Layer() *highlight.Layer { return m.layer }

// Apply adds spans to the surface.
func (m *Model) Apply(spans ...highlight.Span) { m.layer.Add(spans...) }

// ClearCategory removes every span of c.
func (m *Model) ClearCategory(c highlight.Category) { m.layer.ClearCategory(c) }

// VisibleRange reports the lines currently on screen. Before the first
// layout it reports {0,0}.
func (m *Model) VisibleRange() highlight.VisibleRange {
	if m.height <= 0 || m.buf.Len() == 0 {
		return highlight.VisibleRange{}
	}
	last := min(m.top+m.height-1, m.buf.Len()-1)
	return highlight.VisibleRange{First: m.top, Last: last}
}

// Annotate runs a over the visible lines and applies the result. When the
// surface has not been laid out yet it schedules a HighlightRetry instead.
func (m *Model) Annotate(a Annotator) tea.Cmd {
	if a == nil || m.buf.Len() == 0 {
		return nil
	}
	vr := m.VisibleRange()
	if m.height > 0 && vr.Degenerate(m.buf.Len()) {
		// A one-row viewport at the top is real; widen it past the
		// "not laid out" shape.
		vr.Last = 1
	}
	spans, err := a.AnnotateVisible(m.buf, vr)
	if errors.Is(err, highlight.ErrDegenerateRange) {
		if m.retries >= maxRetries {
			return nil
		}
		m.retries++
		pane, version := m.pane, m.version
		return common.SafeTick(highlight.RetryDelay, func(_ time.Time) tea.Msg {
			return messages.HighlightRetry{Pane: pane, Version: version}
		})
	}
	m.retries = 0
	m.layer.Add(spans...)
	return nil
}

// Retry handles a HighlightRetry meant for this surface.
func (m *Model) Retry(msg messages.HighlightRetry, a Annotator) tea.Cmd {
	if msg.Pane != m.pane || msg.Version != m.version {
		return nil
	}
	return m.Annotate(a)
}

// Cursor returns the cursor line.
func (m *Model) Cursor() int { return m.cursor }

// SetCursor moves the cursor to line and scrolls it into view.
func (m *Model) SetCursor(line int) {
	if m.buf.Len() == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(line, 0, m.buf.Len()-1)
	m.ScrollToLine(m.cursor)
}

// Top returns the first visible line.
func (m *Model) Top() int { return m.top }

// Left returns the horizontal offset in cells.
func (m *Model) Left() int { return m.left }

// ScrollBy scrolls vertically by delta lines.
func (m *Model) ScrollBy(delta int) {
	m.top += delta
	m.clampScroll()
}

// ScrollTo puts line at the top of the viewport.
func (m *Model) ScrollTo(line int) {
	m.top = line
	m.clampScroll()
}

// ScrollToBottom shows the last page.
func (m *Model) ScrollToBottom() {
	m.top = m.buf.Len()
	m.clampScroll()
}

// ScrollToLine scrolls the minimum amount that makes line visible.
func (m *Model) ScrollToLine(line int) {
	page := max(m.height, 1)
	if line < m.top {
		m.top = line
	} else if line >= m.top+page {
		m.top = line - page + 1
	}
	m.clampScroll()
}

// ScrollHorizontal scrolls left (negative) or right by delta cells.
func (m *Model) ScrollHorizontal(delta int) {
	m.left = max(m.left+delta, 0)
	if w := m.maxLineWidth(); m.left > w {
		m.left = w
	}
}

// ScrollToSpan makes s visible. With alignRight, a span past the right
// edge is aligned to that edge so the start of the line stays in view as
// long as possible.
func (m *Model) ScrollToSpan(s highlight.Span, alignRight bool) {
	m.ScrollToLine(s.Line)
	line := m.buf.Line(s.Line)
	start := runewidth.StringWidth(line[:clamp(s.Start, 0, len(line))])
	end := runewidth.StringWidth(line[:clamp(s.End, 0, len(line))])
	width := max(m.width, 1)
	switch {
	case end > m.left+width:
		if alignRight {
			m.left = end - width
		} else {
			m.left = start
		}
	case start < m.left:
		m.left = start
	}
	if start < m.left {
		// Wider than the viewport: prefer showing where it begins.
		m.left = start
	}
}

// ZoneID returns the mouse zone of line.
func (m *Model) ZoneID(line int) string {
	return m.zonePrefix + "line-" + strconv.Itoa(line)
}

// LineAtMouse returns the line whose zone contains the cell (x, y).
func (m *Model) LineAtMouse(x, y int) (int, bool) {
	if m.zone == nil {
		return 0, false
	}
	vr := m.VisibleRange()
	for i := vr.First; i <= vr.Last && i < m.buf.Len(); i++ {
		z := m.zone.Get(m.ZoneID(i))
		if z == nil || z.IsZero() {
			continue
		}
		if x >= z.StartX && x <= z.EndX && y >= z.StartY && y <= z.EndY {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) clampScroll() {
	maxTop := max(m.buf.Len()-max(m.height, 1), 0)
	m.top = clamp(m.top, 0, maxTop)
}

func (m *Model) maxLineWidth() int {
	w := 0
	for _, line := range m.buf.Lines() {
		w = max(w, runewidth.StringWidth(line))
	}
	return w
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize expands tabs to tab stops and replaces control characters and
// invalid UTF-8.
func sanitize(line string) string {
	if !strings.ContainsFunc(line, needsClean) {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range strings.ToValidUTF8(line, string(utf8.RuneError)) {
		switch {
		case r == '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		case r < 0x20 || r == 0x7f:
			r = '?'
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

func needsClean(r rune) bool {
	return r < 0x20 || r == 0x7f || r == utf8.RuneError
}
