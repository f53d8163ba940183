package history

import (
	"regexp"
	"strings"

	"github.com/andyrewlee/gitz/internal/highlight"
)

// logPattern matches one line of `git log --oneline --graph --decorate`:
//
//	graph-prefix (hash " " ("(" decorations ")" " ")? summary)?
//
// Groups: 1 graph, 3 hash, 4 decoration with its trailing space, 5 summary.
var logPattern = regexp.MustCompile(`^([ *|\\/]+)((\w{6,}) (\([^)]+\) )?(.+))?$`)

// LineMatch holds the parts of a history line. Ranges are byte offsets and
// are empty when the part is absent.
type LineMatch struct {
	Line       string
	Graph      highlight.Range
	Hash       highlight.Range
	Decoration highlight.Range
	Summary    highlight.Range
	matched    bool
}

// ParseLine splits a history line into its graph, hash, decoration and
// summary parts. Lines that do not follow the grammar yield a match with
// Matched() == false.
func ParseLine(line string) LineMatch {
	m := LineMatch{Line: line}
	loc := logPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return m
	}
	m.matched = true
	m.Graph = group(loc, 1, highlight.CategoryGraph)
	m.Hash = group(loc, 3, highlight.CategorySHA)
	m.Decoration = group(loc, 4, highlight.CategoryDecoration)
	if !m.Decoration.Empty() {
		// Drop the separator space that the pattern consumes after ")".
		m.Decoration.End--
	}
	m.Summary = group(loc, 5, highlight.CategoryNone)
	return m
}

func group(loc []int, n int, c highlight.Category) highlight.Range {
	if 2*n+1 >= len(loc) || loc[2*n] < 0 {
		return highlight.Range{Category: c}
	}
	return highlight.Range{Start: loc[2*n], End: loc[2*n+1], Category: c}
}

// Matched reports whether the line follows the history grammar.
func (m LineMatch) Matched() bool {
	return m.matched
}

// HasHash reports whether the line names a commit. Pure graph lines
// (merge/continuation art) do not.
func (m LineMatch) HasHash() bool {
	return !m.Hash.Empty()
}

// HashText returns the abbreviated commit hash, or "".
func (m LineMatch) HashText() string {
	return m.text(m.Hash)
}

// DecorationText returns the decoration including parentheses, or "".
func (m LineMatch) DecorationText() string {
	return m.text(m.Decoration)
}

func (m LineMatch) text(r highlight.Range) string {
	if r.Empty() {
		return ""
	}
	return m.Line[r.Start:r.End]
}

// Ref is one entry of a decoration list.
type Ref struct {
	Text  string
	Start int // byte offset within the line
	End   int
}

// Refs splits the decoration list into its comma separated entries.
func (m LineMatch) Refs() []Ref {
	if m.Decoration.Empty() {
		return nil
	}
	return splitRefs(m.DecorationText(), m.Decoration.Start)
}

// splitRefs splits "(a, b, c)" into entries, reporting offsets shifted by
// offset. Separators are "," followed by an optional space.
func splitRefs(decoration string, offset int) []Ref {
	if len(decoration) < 2 || decoration[0] != '(' || decoration[len(decoration)-1] != ')' {
		return nil
	}
	inner := decoration[1 : len(decoration)-1]
	base := offset + 1

	var refs []Ref
	pos := 0
	for pos <= len(inner) {
		end := strings.IndexByte(inner[pos:], ',')
		if end < 0 {
			end = len(inner)
		} else {
			end += pos
		}
		start := pos
		if start < end && inner[start] == ' ' {
			start++
		}
		if start < end {
			refs = append(refs, Ref{Text: inner[start:end], Start: base + start, End: base + end})
		}
		pos = end + 1
	}
	return refs
}

// IsHead reports whether the entry is the HEAD pointer, attached or
// detached.
func (r Ref) IsHead() bool {
	return r.Text == "HEAD" || strings.HasPrefix(r.Text, headArrow+" ")
}
