package historypane

import (
	"strconv"
	"strings"

	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/ui/common"
)

// View renders the pane with its border.
func (m *Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	rows := []string{m.titleLine(), m.filterLine()}
	switch {
	case m.err != nil:
		rows = append(rows, m.styles.Error.Render(git.ErrorSummary(m.err)))
	case m.loading && m.text.Buffer().Len() == 0:
		rows = append(rows, m.styles.Muted.Render("Loading history..."))
	case m.text.Buffer().Len() == 0:
		rows = append(rows, m.styles.Muted.Render("No commits"))
	default:
		rows = append(rows, strings.Split(m.text.View(), "\n")...)
	}
	return common.RenderFrame(m.styles, m.focused, m.width, m.height, rows)
}

func (m *Model) titleLine() string {
	title := m.styles.PaneTitle.Render("History")
	if len(m.pathspec) > 0 {
		title += m.styles.Muted.Render(" " + strings.Join(m.pathspec, " "))
	}
	if m.query != "" {
		n := m.text.Buffer().Len()
		title += m.styles.Muted.Render(" (" + plural(n, "match", "matches") + ")")
	}
	return title
}

func (m *Model) filterLine() string {
	if !m.filter.Focused() && m.filter.Value() == "" {
		return m.styles.Muted.Render(m.keymap.Filter.Help().Key + " filter")
	}
	return m.filter.View()
}

func plural(n int, one, many string) string {
	word := many
	if n == 1 {
		word = one
	}
	return strconv.Itoa(n) + " " + word
}
