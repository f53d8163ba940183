// Package search implements incremental, forward-only text search over a
// highlight buffer.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/andyrewlee/gitz/internal/highlight"
)

// State is the engine's memory between calls. A miss only records the
// query; Line and Column keep the last match for that query.
type State struct {
	Query  string
	Line   int
	Column int
	Found  bool
}

// Outcome describes the result of one Search call.
type Outcome struct {
	// Span is the match, tagged CategoryFound. Only valid when Found.
	Span  highlight.Span
	Found bool
	// Cleared is set for an empty query; callers drop all found spans.
	Cleared bool
}

// Engine is a forward-only, case-insensitive search. Repeating a query
// continues after the previous match; it does not wrap.
type Engine struct {
	state   State
	version int
}

// NewEngine returns an engine with empty state.
func NewEngine() *Engine {
	return &Engine{}
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state
}

// Reset forgets the query and position.
func (e *Engine) Reset() {
	e.state = State{}
}

// Search looks for query in buf.
func (e *Engine) Search(buf highlight.Buffer, query string) Outcome {
	if buf.Version != e.version {
		e.version = buf.Version
		e.state = State{}
	}
	if query == "" {
		e.state = State{}
		return Outcome{Cleared: true}
	}

	start := 0
	if query == e.state.Query {
		if e.state.Found {
			start = e.state.Line + 1
		}
	} else {
		e.state = State{Query: query}
	}

	for i := start; i < buf.Len(); i++ {
		line := buf.Line(i)
		s, end, ok := IndexFold(line, query)
		if !ok {
			continue
		}
		e.state.Line = i
		e.state.Column = s
		e.state.Found = true
		return Outcome{
			Span:  highlight.Span{Line: i, Start: s, End: end, Category: highlight.CategoryFound},
			Found: true,
		}
	}
	return Outcome{}
}

// IndexFold finds the first case-insensitive occurrence of query in line.
// It returns the byte range of the match within line.
func IndexFold(line, query string) (start, end int, ok bool) {
	if query == "" {
		return 0, 0, false
	}
	// ASCII fast path keeps offsets aligned with line.
	if isASCII(line) && isASCII(query) {
		i := strings.Index(strings.ToLower(line), strings.ToLower(query))
		if i < 0 {
			return 0, 0, false
		}
		return i, i + len(query), true
	}
	for i := 0; i < len(line); {
		if n, ok := prefixFold(line[i:], query); ok {
			return i, i + n, true
		}
		_, size := utf8.DecodeRuneInString(line[i:])
		i += size
	}
	return 0, 0, false
}

// prefixFold reports whether s starts with query under simple case folding
// and returns the number of bytes of s consumed.
func prefixFold(s, query string) (int, bool) {
	n := 0
	for _, q := range query {
		if n >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[n:])
		if !equalFold(r, q) {
			return 0, false
		}
		n += size
	}
	return n, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b) || unicode.ToUpper(a) == unicode.ToUpper(b)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
