package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

func (m *Model) renderContent() string {
	s := m.store.State()
	c := s.Content()
	blocks := c.Blocks()
	m.rows = layoutRows(blocks, m.viewport.Width)

	sel := s.Selection()
	focus := point{key: sel.FocusKey, offset: sel.FocusOffset}
	selRange, hasSel := selectionBounds(c, sel)

	out := make([]string, 0, len(m.rows))
	for _, row := range m.rows {
		b := blocks[row.block]
		var sb strings.Builder
		if p := row.prefix(); p != "" {
			sb.WriteString(m.cfg.Style.Marker.Render(p))
		}

		cursorAt := -1
		if m.focused && !m.prompting && b.Key() == focus.key && row.holds(focus.offset) {
			cursorAt = clampInt(focus.offset, row.start, row.end)
		}

		var selStart, selEnd int
		if hasSel {
			selStart, selEnd = selRange.colsFor(row.block, b.Len())
		}
		chars := b.Characters()

		// Group characters with identical rendering into runs.
		runStart := row.start
		for i := row.start; i <= row.end; i++ {
			boundary := i == row.end || i == cursorAt || i-1 == cursorAt
			if !boundary && i > runStart {
				prev, cur := chars[i-1], chars[i]
				boundary = !prev.Style.Equal(cur.Style) || prev.Entity != cur.Entity ||
					inRange(i-1, selStart, selEnd) != inRange(i, selStart, selEnd)
			}
			if !boundary || i == runStart {
				continue
			}
			first := chars[runStart]
			st := m.charStyle(c, b.Type(), first, runStart == cursorAt, inRange(runStart, selStart, selEnd))
			sb.WriteString(st.Render(joinClusters(chars[runStart:i])))
			runStart = i
		}
		if cursorAt == row.end {
			sb.WriteString(m.charStyle(c, b.Type(), content.Character{}, true, false).Render(" "))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// charStyle layers cursor, selection, link, inline and block styles in that
// order of precedence.
func (m *Model) charStyle(c *content.Content, blockType string, ch content.Character, cursor, selected bool) lipgloss.Style {
	st := lipgloss.NewStyle()
	if cursor {
		st = m.cfg.Style.Cursor
	}
	if selected {
		st = st.Inherit(m.cfg.Style.Selection)
	}
	if ch.Entity != content.NoEntity {
		if e, ok := c.Entity(ch.Entity); ok && e.Type == m.cfg.LinkType {
			st = st.Inherit(m.cfg.Style.Link)
		}
	}
	for _, name := range ch.Style.Names() {
		if is, ok := m.cfg.Style.Inline[name]; ok {
			st = st.Inherit(is)
		}
	}
	if bs, ok := m.cfg.Style.Blocks[blockType]; ok {
		st = st.Inherit(bs)
	}
	return st.Inherit(m.cfg.Style.Text)
}

func joinClusters(chars []content.Character) string {
	var sb strings.Builder
	for _, ch := range chars {
		sb.WriteString(ch.Cluster)
	}
	return sb.String()
}

func inRange(i, start, end int) bool { return i >= start && i < end }

// blockSpan is a non-collapsed selection resolved to block indexes.
type blockSpan struct {
	first, last int
	start, end  int
}

func selectionBounds(c *content.Content, sel content.Selection) (blockSpan, bool) {
	if sel.IsCollapsed() {
		return blockSpan{}, false
	}
	first, ok := c.BlockIndex(sel.StartKey())
	if !ok {
		return blockSpan{}, false
	}
	last, ok := c.BlockIndex(sel.EndKey())
	if !ok {
		return blockSpan{}, false
	}
	return blockSpan{first: first, last: last, start: sel.StartOffset(), end: sel.EndOffset()}, true
}

// colsFor returns the selected offsets of block i, empty when i is outside
// the span.
func (s blockSpan) colsFor(i, length int) (int, int) {
	if i < s.first || i > s.last {
		return 0, 0
	}
	start, end := 0, length
	if i == s.first {
		start = s.start
	}
	if i == s.last {
		end = s.end
	}
	return start, end
}

func (m Model) cursorRow() int {
	sel := m.store.State().Selection()
	return rowOf(m.rows, m.store.State().Content().Blocks(), point{key: sel.FocusKey, offset: sel.FocusOffset})
}

func (m Model) footerRows() int {
	if m.prompting || m.cfg.ShowStatus {
		return 1
	}
	return 0
}

func (m Model) footer() string {
	if m.prompting {
		return m.prompt.View()
	}
	if !m.cfg.ShowStatus {
		return ""
	}
	text := m.statusText()
	if m.width > 0 {
		text = grapheme.Truncate(text, m.width)
	}
	return m.cfg.Style.Status.Render(text)
}

// statusText describes the selection: block type, active styles and the
// selected link.
func (m Model) statusText() string {
	parts := []string{m.block.Current()}
	if styles := m.inline.Current(); !styles.IsEmpty() {
		parts = append(parts, strings.Join(styles.Names(), " "))
	}
	if d, ok := m.link.Data(); ok {
		parts = append(parts, "link "+d.URL())
	}
	if m.cfg.ReadOnly {
		parts = append(parts, "read-only")
	}
	return strings.Join(parts, " · ")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
