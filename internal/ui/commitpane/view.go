package commitpane

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gitz/internal/git"
	"github.com/andyrewlee/gitz/internal/ui/common"
)

// View renders the pane with its border.
func (m *Model) View() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}
	rows := []string{m.titleLine()}
	var body []string
	switch {
	case m.err != nil:
		body = []string{m.styles.Error.Render(git.ErrorSummary(m.err))}
	case m.shown.Hash == "" && m.loading:
		body = []string{m.styles.Muted.Render("Loading commit...")}
	case m.shown.Hash == "":
		body = []string{m.styles.Muted.Render("No commit selected")}
	default:
		body = strings.Split(m.text.View(), "\n")
	}
	for len(body) < m.text.Height() {
		body = append(body, "")
	}
	rows = append(rows, body[:max(m.text.Height(), 0)]...)
	rows = append(rows, m.searchLine())
	return common.RenderFrame(m.styles, m.focused, m.width, m.height, rows)
}

func (m *Model) titleLine() string {
	if m.shown.Hash == "" {
		return m.styles.PaneTitle.Render("Commit")
	}
	title := m.styles.PaneTitle.Render("Commit ") + m.styles.Title.Render(m.shown.Hash)
	if m.shown.Scope != "" {
		title += m.styles.Muted.Render(" in " + m.shown.Scope)
	}
	if m.loading {
		title += m.styles.Muted.Render(" loading...")
	}
	if m.ToggleVisible() {
		toggle := m.styles.Toggle.Render(m.keymap.FullHistory.Help().Key + " show full commit")
		if m.zone != nil {
			toggle = m.zone.Mark(toggleZoneID, toggle)
		}
		title += " " + toggle
	}
	return title
}

func (m *Model) searchLine() string {
	if !m.input.Focused() && m.input.Value() == "" {
		return m.styles.Muted.Render(m.keymap.Search.Help().Key + " search")
	}
	suffix := ""
	if m.missed {
		suffix = m.styles.Warning.Render(noMatchSuffix)
	}
	// The input pads itself to its width; the miss marker takes the tail.
	avail := max(m.width-2-ansi.StringWidth(suffix), 0)
	return ansi.Truncate(m.input.View(), avail, "") + suffix
}
