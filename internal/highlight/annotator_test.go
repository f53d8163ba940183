package highlight

import (
	"errors"
	"regexp"
	"testing"
)

var digitRule = RuleFunc(func(line string) []Range {
	var out []Range
	for i := 0; i < len(line); i++ {
		if line[i] >= '0' && line[i] <= '9' {
			out = append(out, Range{Start: i, End: i + 1, Category: CategorySHA})
		}
	}
	return out
})

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line 1"
	}
	return out
}

func TestAnnotateVisibleOnlyTouchesRange(t *testing.T) {
	buf := NewBuffer(lines(100), 1)
	a := NewAnnotator(RuleSet{digitRule})

	spans, err := a.AnnotateVisible(buf, VisibleRange{First: 10, Last: 19})
	if err != nil {
		t.Fatalf("AnnotateVisible() error = %v", err)
	}
	if len(spans) != 10 {
		t.Fatalf("expected 10 spans, got %d", len(spans))
	}
	for _, s := range spans {
		if s.Line < 10 || s.Line > 19 {
			t.Fatalf("span outside visible range: %+v", s)
		}
	}
	if a.cache.Len() != 10 {
		t.Fatalf("expected 10 annotated lines, got %d", a.cache.Len())
	}
}

func TestAnnotateVisibleIsIdempotent(t *testing.T) {
	buf := NewBuffer(lines(50), 1)
	a := NewAnnotator(RuleSet{digitRule})
	layer := NewLayer()

	first, err := a.AnnotateVisible(buf, VisibleRange{First: 0, Last: 20})
	if err != nil {
		t.Fatalf("AnnotateVisible() error = %v", err)
	}
	layer.Add(first...)

	second, err := a.AnnotateVisible(buf, VisibleRange{First: 0, Last: 20})
	if err != nil {
		t.Fatalf("AnnotateVisible() error = %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no spans on second pass, got %d", len(second))
	}
	layer.Add(second...)
	if got := layer.Count(CategorySHA); got != 21 {
		t.Fatalf("expected 21 sha spans, got %d", got)
	}

	// Scrolling down only annotates new lines.
	third, _ := a.AnnotateVisible(buf, VisibleRange{First: 15, Last: 30})
	if len(third) != 10 {
		t.Fatalf("expected 10 new spans after scroll, got %d", len(third))
	}
}

func TestAnnotateVisibleResetsOnNewVersion(t *testing.T) {
	a := NewAnnotator(RuleSet{digitRule})
	buf := NewBuffer(lines(10), 1)
	_, _ = a.AnnotateVisible(buf, VisibleRange{First: 0, Last: buf.Len() - 1})
	if a.cache.Len() != 10 {
		t.Fatalf("expected all lines annotated")
	}

	next := NewBuffer(lines(10), 2)
	spans, err := a.AnnotateVisible(next, VisibleRange{First: 0, Last: 4})
	if err != nil {
		t.Fatalf("AnnotateVisible() error = %v", err)
	}
	if len(spans) != 5 {
		t.Fatalf("expected cache to be invalidated by new version, got %d spans", len(spans))
	}
}

func TestAnnotateVisibleDegenerateRange(t *testing.T) {
	a := NewAnnotator(RuleSet{digitRule})

	_, err := a.AnnotateVisible(NewBuffer(lines(5), 1), VisibleRange{})
	if !errors.Is(err, ErrDegenerateRange) {
		t.Fatalf("expected ErrDegenerateRange, got %v", err)
	}
	if a.cache.Len() != 0 {
		t.Fatalf("degenerate range must not mark lines")
	}

	// A one-line buffer really is fully visible at {0,0}.
	spans, err := a.AnnotateVisible(NewBuffer(lines(1), 2), VisibleRange{})
	if err != nil || len(spans) != 1 {
		t.Fatalf("expected one span for single-line buffer, got %d (err=%v)", len(spans), err)
	}
}

func TestAnnotateVisibleClampsAndToleratesEmpty(t *testing.T) {
	a := NewAnnotator(RuleSet{digitRule})
	spans, err := a.AnnotateVisible(NewBuffer(nil, 1), VisibleRange{First: 0, Last: 40})
	if err != nil || len(spans) != 0 {
		t.Fatalf("expected nothing for empty buffer, got %v %v", spans, err)
	}

	spans, err = a.AnnotateVisible(NewBuffer(lines(3), 2), VisibleRange{First: -5, Last: 40})
	if err != nil || len(spans) != 3 {
		t.Fatalf("expected clamped range to annotate 3 lines, got %d (err=%v)", len(spans), err)
	}
}

func TestSkipLeavesLinesUntagged(t *testing.T) {
	a := NewAnnotator(RuleSet{digitRule})
	a.SetSkip(func(line int) bool { return line%2 == 0 })
	spans, _ := a.AnnotateVisible(NewBuffer(lines(6), 1), VisibleRange{First: 0, Last: 5})
	for _, s := range spans {
		if s.Line%2 == 0 {
			t.Fatalf("skipped line %d was annotated", s.Line)
		}
	}
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if !a.cache.Marked(0) {
		t.Fatalf("skipped line should still count as processed")
	}
}

func TestRuleSetDropsInvalidRanges(t *testing.T) {
	bad := RuleFunc(func(line string) []Range {
		return []Range{
			{Start: 3, End: 1, Category: CategorySHA},
			{Start: 0, End: len(line) + 10, Category: CategorySHA},
			{Start: 0, End: 1, Category: CategoryGraph},
		}
	})
	got := RuleSet{bad, nil}.Match("abc")
	if len(got) != 1 || got[0].Category != CategoryGraph {
		t.Fatalf("expected only the valid range, got %+v", got)
	}
}

func TestPrefixAndGroupRules(t *testing.T) {
	prefix := PrefixRule(regexp.MustCompile(`^@@`), CategoryHunkHeader)
	if got := prefix.Match("@@ -1 +1 @@"); len(got) != 1 || got[0].End != 11 {
		t.Fatalf("unexpected prefix match: %+v", got)
	}
	if got := prefix.Match(""); got != nil {
		t.Fatalf("expected no match on empty line, got %+v", got)
	}
}
