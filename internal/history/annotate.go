package history

import (
	"strings"

	"github.com/andyrewlee/gitz/internal/highlight"
)

const (
	headArrow = "HEAD ->"
	tagPrefix = "tag: "
)

// Rules returns the history rule set. Ranges are emitted graph, sha,
// decoration and then the decoration entries, so entry categories narrow
// the decoration span.
func Rules() highlight.RuleSet {
	return highlight.RuleSet{
		highlight.RuleFunc(graphAndHash),
		highlight.RuleFunc(decorationRanges),
	}
}

func graphAndHash(line string) []highlight.Range {
	m := ParseLine(line)
	if !m.Matched() {
		return nil
	}
	out := []highlight.Range{m.Graph}
	if m.HasHash() {
		out = append(out, m.Hash)
	}
	return out
}

func decorationRanges(line string) []highlight.Range {
	m := ParseLine(line)
	if m.Decoration.Empty() {
		return nil
	}
	out := []highlight.Range{m.Decoration}
	return append(out, RefRanges(m.Refs())...)
}

// RefRanges tags decoration entries:
//
//	"tag: <name>"    tag-name over the whole entry
//	"HEAD -> <name>" head over "HEAD ->", local-branch over the name
//	"<name>"         local-branch when the name has no "/"
//
// Entries containing "/" are remote-tracking refs and stay untagged. This
// also leaves local branches such as "feature/x" untagged.
func RefRanges(refs []Ref) []highlight.Range {
	var out []highlight.Range
	for _, ref := range refs {
		switch {
		case strings.HasPrefix(ref.Text, tagPrefix):
			out = append(out, highlight.Range{Start: ref.Start, End: ref.End, Category: highlight.CategoryTagName})
		case strings.HasPrefix(ref.Text, headArrow+" "):
			arrowEnd := ref.Start + len(headArrow)
			out = append(out, highlight.Range{Start: ref.Start, End: arrowEnd, Category: highlight.CategoryHead})
			if nameStart := arrowEnd + 1; nameStart < ref.End {
				out = append(out, highlight.Range{Start: nameStart, End: ref.End, Category: highlight.CategoryLocalBranch})
			}
		case !strings.Contains(ref.Text, "/"):
			out = append(out, highlight.Range{Start: ref.Start, End: ref.End, Category: highlight.CategoryLocalBranch})
		}
	}
	return out
}

// FindHead returns the index of the first line whose decoration names HEAD.
func FindHead(lines []string) (int, bool) {
	for i, line := range lines {
		if !strings.Contains(line, "HEAD") {
			continue
		}
		for _, ref := range ParseLine(line).Refs() {
			if ref.IsHead() {
				return i, true
			}
		}
	}
	return 0, false
}

// SelectionSpan returns the span marking line as the selected commit.
// ok is false for lines without a hash.
func SelectionSpan(index int, line string) (highlight.Span, bool) {
	m := ParseLine(line)
	if !m.HasHash() {
		return highlight.Span{}, false
	}
	return highlight.Span{
		Line:     index,
		Start:    m.Hash.Start,
		End:      m.Hash.End,
		Category: highlight.CategorySelected,
	}, true
}

// Filter returns the indices of lines containing query (case-sensitive,
// plain substring). An empty query keeps every line.
func Filter(lines []string, query string) []int {
	out := make([]int, 0, len(lines))
	for i, line := range lines {
		if query == "" || strings.Contains(line, query) {
			out = append(out, i)
		}
	}
	return out
}

// FilterLines returns the subsequence of lines containing query. An empty
// query returns lines unchanged.
func FilterLines(lines []string, query string) []string {
	if query == "" {
		return lines
	}
	idx := Filter(lines, query)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = lines[j]
	}
	return out
}
