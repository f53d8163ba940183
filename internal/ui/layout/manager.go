package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// LayoutMode determines how many panes are visible
type LayoutMode int

const (
	LayoutTwoPane LayoutMode = iota // History + Commit side by side
	LayoutStacked                   // History above Commit
)

// Manager computes the two-pane split.
type Manager struct {
	mode LayoutMode

	totalWidth  int
	totalHeight int

	historyWidth  int
	historyHeight int
	commitWidth   int
	commitHeight  int
	gapX          int
	statusRows    int

	// Configuration
	minHistoryWidth int
	minCommitWidth  int
	historyRatio    float64
}

// NewManager creates a new layout manager
func NewManager() *Manager {
	return &Manager{
		gapX:            1,
		statusRows:      1,
		minHistoryWidth: 30,
		minCommitWidth:  50,
		historyRatio:    0.4,
	}
}

// Resize recalculates layout based on new dimensions
func (m *Manager) Resize(width, height int) {
	m.totalWidth = max(width, 0)
	m.totalHeight = max(height-m.statusRows, 0)

	if m.totalWidth >= m.minHistoryWidth+m.minCommitWidth+m.gapX {
		m.mode = LayoutTwoPane
		m.calculateTwoPaneWidths()
		return
	}
	m.mode = LayoutStacked
	m.historyWidth = m.totalWidth
	m.commitWidth = m.totalWidth
	m.historyHeight = m.totalHeight / 2
	m.commitHeight = m.totalHeight - m.historyHeight
}

// calculateTwoPaneWidths splits the width by historyRatio, respecting the
// minimum widths.
func (m *Manager) calculateTwoPaneWidths() {
	usable := m.totalWidth - m.gapX
	m.historyWidth = int(float64(usable) * m.historyRatio)
	if m.historyWidth < m.minHistoryWidth {
		m.historyWidth = m.minHistoryWidth
	}
	m.commitWidth = usable - m.historyWidth
	if m.commitWidth < m.minCommitWidth {
		m.commitWidth = m.minCommitWidth
		m.historyWidth = usable - m.commitWidth
	}
	m.historyHeight = m.totalHeight
	m.commitHeight = m.totalHeight
}

// Mode returns the current layout mode
func (m *Manager) Mode() LayoutMode {
	return m.mode
}

// HistorySize returns the history pane size.
func (m *Manager) HistorySize() (int, int) {
	return m.historyWidth, m.historyHeight
}

// CommitSize returns the commit pane size.
func (m *Manager) CommitSize() (int, int) {
	return m.commitWidth, m.commitHeight
}

// Width returns the total width.
func (m *Manager) Width() int {
	return m.totalWidth
}

// Height returns the pane height, excluding the status row.
func (m *Manager) Height() int {
	return m.totalHeight
}

// Render joins the pane views and the status line.
func (m *Manager) Render(history, commit, status string) string {
	var panes string
	switch m.mode {
	case LayoutTwoPane:
		gap := strings.Repeat(" ", m.gapX)
		panes = lipgloss.JoinHorizontal(lipgloss.Top, history, gap, commit)
	default:
		panes = lipgloss.JoinVertical(lipgloss.Left, history, commit)
	}
	if m.statusRows == 0 {
		return panes
	}
	return panes + "\n" + status
}
