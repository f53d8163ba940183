package textpane

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gitz/internal/highlight"
	"github.com/andyrewlee/gitz/internal/perf"
)

// View renders the visible lines, each padded to the content width.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	defer perf.Time("textpane.view")()

	rows := make([]string, 0, m.height)
	blank := strings.Repeat(" ", m.width)
	for row := 0; row < m.height; row++ {
		i := m.top + row
		if i >= m.buf.Len() {
			rows = append(rows, blank)
			continue
		}
		rows = append(rows, m.renderLine(i))
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderLine(i int) string {
	line := m.buf.Line(i)
	ranges := m.layer.At(i)
	bg := m.lineBackground(ranges)

	var b strings.Builder
	for _, run := range highlight.Runs(len(line), ranges) {
		style := m.palette.Style(run.Category)
		if bg != nil && m.palette[run.Category].Bg == nil {
			style = style.Background(bg)
		}
		b.WriteString(style.Render(line[run.Start:run.End]))
	}

	text := ansi.Cut(b.String(), m.left, m.left+m.width)
	if pad := m.width - ansi.StringWidth(text); pad > 0 {
		fill := strings.Repeat(" ", pad)
		if bg != nil {
			fill = lipgloss.NewStyle().Background(bg).Render(fill)
		}
		text += fill
	}
	if m.zone != nil {
		text = m.zone.Mark(m.ZoneID(i), text)
	}
	return text
}

// lineBackground picks the row background of the highest full-line
// category on the line.
func (m *Model) lineBackground(ranges []highlight.Range) color.Color {
	var (
		bg   color.Color
		best highlight.Category
	)
	for _, r := range ranges {
		if c, ok := m.palette.LineBackground(r.Category); ok && r.Category > best {
			bg, best = c, r.Category
		}
	}
	return bg
}
