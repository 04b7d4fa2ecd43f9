package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/iw2rmb/inkwell/state"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.cfg.ScrollPolicy == ScrollAllowManual || !isManualScrollMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused || m.prompting {
		return m, cmd
	}

	// Only handle selection changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}
		p := m.screenToPoint(msg.X, msg.Y)
		if msg.Shift {
			sel := m.store.State().Selection()
			m.mouseAnchor = point{key: sel.AnchorKey, offset: sel.AnchorOffset}
		} else {
			m.mouseAnchor = p
		}
		m.selectTo(p)
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		m.selectTo(m.screenToPoint(x, y))

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

func (m Model) selectTo(p point) {
	a := m.mouseAnchor
	m.store.Update(func(prev *state.EditorState) *state.EditorState {
		return state.AcceptSelection(prev, prev.Content().Select(a.key, a.offset, p.key, p.offset))
	})
}

// screenToPoint maps viewport-local cell coordinates to a caret position.
// Clicking on a cluster places the caret before it; clicks past the end of a
// row land at its end.
func (m Model) screenToPoint(x, y int) point {
	blocks := m.store.State().Content().Blocks()
	if len(m.rows) == 0 {
		return point{key: blocks[0].Key()}
	}
	row := m.rows[clampInt(m.viewport.YOffset+y, 0, len(m.rows)-1)]
	b := blocks[row.block]

	cell := x - grapheme.Width(row.prefix())
	off := row.start
	for off < row.end {
		ch, _ := b.CharAt(off)
		w := grapheme.Width(ch.Cluster)
		if cell < w {
			break
		}
		cell -= w
		off++
	}
	return point{key: b.Key(), offset: off}
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
