package highlight

import (
	"sort"
	"strings"
)

// Range is a half-open byte range within a single line.
type Range struct {
	Start    int
	End      int
	Category Category
}

// Empty reports whether the range covers no bytes.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

// Span is a Range anchored to a line of a Buffer.
type Span struct {
	Line     int
	Start    int
	End      int
	Category Category
}

// SpanFor anchors r to line.
func SpanFor(line int, r Range) Span {
	return Span{Line: line, Start: r.Start, End: r.End, Category: r.Category}
}

// Buffer is an immutable snapshot of text split into lines.
// Version changes every time a pane replaces its contents.
type Buffer struct {
	lines   []string
	Version int
}

// NewBuffer creates a buffer from lines. The slice is not copied.
func NewBuffer(lines []string, version int) Buffer {
	return Buffer{lines: lines, Version: version}
}

// SplitLines splits text into lines the way a text widget would show them.
// A single trailing newline does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// Len returns the number of lines.
func (b Buffer) Len() int {
	return len(b.lines)
}

// Line returns line i, or "" when out of range.
func (b Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Lines returns the underlying lines. Callers must not modify them.
func (b Buffer) Lines() []string {
	return b.lines
}

// VisibleRange is an inclusive range of line indices shown by a viewport.
type VisibleRange struct {
	First int
	Last  int
}

// Degenerate reports the "not laid out yet" shape: a viewport claiming only
// line 0 is visible while the buffer has more content.
func (vr VisibleRange) Degenerate(total int) bool {
	return vr.First == 0 && vr.Last == 0 && total > 1
}

// Clamp limits the range to a buffer of total lines.
// ok is false when nothing remains.
func (vr VisibleRange) Clamp(total int) (VisibleRange, bool) {
	if total <= 0 {
		return VisibleRange{}, false
	}
	if vr.First < 0 {
		vr.First = 0
	}
	if vr.Last >= total {
		vr.Last = total - 1
	}
	if vr.Last < vr.First {
		return VisibleRange{}, false
	}
	return vr, true
}

// sortRanges orders ranges by start, then by category so higher precedence
// ranges are painted later.
func sortRanges(ranges []Range) {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].Category < ranges[j].Category
	})
}
