package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderFrame draws a bordered pane of exactly width x height cells. Rows
// are clipped or padded to the inner width; missing rows are blank.
func RenderFrame(s Styles, focused bool, width, height int, rows []string) string {
	if width < 2 || height < 2 {
		return ""
	}
	inner := width - 2
	out := make([]string, height-2)
	for i := range out {
		var row string
		if i < len(rows) {
			row = ansi.Truncate(rows[i], inner, "")
		}
		if pad := inner - ansi.StringWidth(row); pad > 0 {
			row += strings.Repeat(" ", pad)
		}
		out[i] = row
	}
	style := s.Pane
	if focused {
		style = s.FocusedPane
	}
	return style.Render(strings.Join(out, "\n"))
}
