package textpane

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/messages"
)

type recordingAnnotator struct {
	calls []highlight.VisibleRange
	err   error
}

func (r *recordingAnnotator) AnnotateVisible(buf highlight.Buffer, vr highlight.VisibleRange) ([]highlight.Span, error) {
	r.calls = append(r.calls, vr)
	if r.err != nil {
		return nil, r.err
	}
	return []highlight.Span{{Line: vr.First, Start: 0, End: 1, Category: highlight.CategorySHA}}, nil
}

func numbered(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("line ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString("\n")
	}
	return b.String()
}

func TestSetTextBumpsVersionAndResets(t *testing.T) {
	m := New(messages.PaneHistory)
	m.SetSize(20, 5)
	buf := m.SetText(numbered(30))
	m.Apply(highlight.Span{Line: 1, Start: 0, End: 2, Category: highlight.CategorySHA})
	m.SetCursor(20)

	next := m.SetText(numbered(3))
	if next.Version != buf.Version+1 {
		t.Fatalf("version = %d, want %d", next.Version, buf.Version+1)
	}
	if m.Layer().Has(1) || m.Cursor() != 0 || m.Top() != 0 {
		t.Fatalf("SetText must clear spans and scroll position")
	}
}

func TestSanitizeExpandsTabs(t *testing.T) {
	tests := map[string]string{
		"a\tb":     "a   b",
		"\tx":      "    x",
		"abcd\te":  "abcd    e",
		"bell\a":   "bell?",
		"bad\xffx": "bad�x",
		"plain":    "plain",
	}
	for in, want := range tests {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestVisibleRangeFollowsScroll(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetText(numbered(100))
	if vr := m.VisibleRange(); vr != (highlight.VisibleRange{}) {
		t.Fatalf("unsized pane should report {0,0}, got %+v", vr)
	}
	m.SetSize(40, 10)
	m.ScrollBy(25)
	if vr := m.VisibleRange(); vr.First != 25 || vr.Last != 34 {
		t.Fatalf("VisibleRange() = %+v", vr)
	}
	m.ScrollToBottom()
	if vr := m.VisibleRange(); vr.Last != 99 || vr.First != 90 {
		t.Fatalf("bottom VisibleRange() = %+v", vr)
	}
}

func TestAnnotateRetriesUntilLaidOut(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetText(numbered(10))
	a := &recordingAnnotator{err: highlight.ErrDegenerateRange}
	if cmd := m.Annotate(a); cmd == nil {
		t.Fatalf("degenerate range should schedule a retry")
	}

	msg := messages.HighlightRetry{Pane: messages.PaneCommit, Version: m.Version()}
	a.err = nil
	m.SetSize(40, 4)
	if cmd := m.Retry(msg, a); cmd != nil {
		t.Fatalf("laid out retry should not reschedule")
	}
	if last := a.calls[len(a.calls)-1]; last.First != 0 || last.Last != 3 {
		t.Fatalf("retry annotated %+v", last)
	}
	if !m.Layer().Has(0, highlight.CategorySHA) {
		t.Fatalf("spans should be applied")
	}

	stale := messages.HighlightRetry{Pane: messages.PaneCommit, Version: m.Version() - 1}
	calls := len(a.calls)
	m.Retry(stale, a)
	m.Retry(messages.HighlightRetry{Pane: messages.PaneHistory, Version: m.Version()}, a)
	if len(a.calls) != calls {
		t.Fatalf("stale or foreign retries must be ignored")
	}
}

func TestAnnotateRetryIsCapped(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetText(numbered(10))
	a := &recordingAnnotator{err: highlight.ErrDegenerateRange}
	for i := 0; i < maxRetries; i++ {
		if m.Annotate(a) == nil {
			t.Fatalf("retry %d should be scheduled", i)
		}
	}
	if m.Annotate(a) != nil {
		t.Fatalf("retries should stop after %d attempts", maxRetries)
	}
}

func TestAnnotateOneRowViewport(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetText(numbered(10))
	m.SetSize(40, 1)
	a := &recordingAnnotator{}
	m.Annotate(a)
	if len(a.calls) != 1 || a.calls[0] != (highlight.VisibleRange{First: 0, Last: 1}) {
		t.Fatalf("calls = %+v", a.calls)
	}
}

func TestScrollToSpanAlignsRight(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetSize(10, 3)
	m.SetLines([]string{"short", "| | * abcdef1 a long summary with the needle at the end"})
	line := m.Buffer().Line(1)
	start := strings.Index(line, "needle")
	span := highlight.Span{Line: 1, Start: start, End: start + len("needle"), Category: highlight.CategoryFound}

	m.ScrollToSpan(span, true)
	if m.Left() != span.End-10 {
		t.Fatalf("left = %d, want %d", m.Left(), span.End-10)
	}

	// Already visible: no horizontal movement.
	left := m.Left()
	m.ScrollToSpan(span, true)
	if m.Left() != left {
		t.Fatalf("visible span should not scroll")
	}

	m.ScrollToSpan(highlight.Span{Line: 0, Start: 0, End: 2}, true)
	if m.Left() != 0 {
		t.Fatalf("span left of the viewport should scroll back, left = %d", m.Left())
	}
}

func TestCursorScrollsIntoView(t *testing.T) {
	m := New(messages.PaneHistory)
	m.SetSize(20, 5)
	m.SetText(numbered(50))
	m.SetCursor(12)
	if m.Top() != 8 {
		t.Fatalf("top = %d, want 8", m.Top())
	}
	m.SetCursor(m.Cursor() - 10)
	if m.Cursor() != 2 || m.Top() != 2 {
		t.Fatalf("cursor = %d top = %d", m.Cursor(), m.Top())
	}
	m.SetCursor(1000)
	if m.Cursor() != 49 {
		t.Fatalf("cursor should clamp, got %d", m.Cursor())
	}
	if m.Top() != 45 {
		t.Fatalf("top = %d, want 45", m.Top())
	}
}

func TestViewClipsAndPads(t *testing.T) {
	m := New(messages.PaneCommit)
	m.SetSize(8, 3)
	m.SetLines([]string{"+added line that is long", "ctx"})
	m.Apply(highlight.Span{Line: 0, Start: 0, End: 24, Category: highlight.CategoryNewLine})

	rows := strings.Split(m.View(), "\n")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if w := ansi.StringWidth(row); w != 8 {
			t.Fatalf("row %d width = %d", i, w)
		}
	}
	if got := ansi.Strip(rows[0]); got != "+added l" {
		t.Fatalf("row 0 = %q", got)
	}

	m.ScrollHorizontal(3)
	if got := ansi.Strip(strings.Split(m.View(), "\n")[1]); got != "        " {
		t.Fatalf("scrolled short line = %q", got)
	}
}
