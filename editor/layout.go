package editor

import (
	"strconv"
	"strings"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// layoutRow is one visual row: a run of a block's characters.
type layoutRow struct {
	block      int
	start, end int // grapheme offsets within the block
	first      bool
	last       bool
	marker     string
}

// point is a caret position in a document.
type point struct {
	key    string
	offset int
}

// blockMarker returns the prefix drawn before the first row of a block.
// ordinal is the 1-based position within a run of ordered list items.
func blockMarker(typ string, ordinal int) string {
	switch typ {
	case content.BlockHeaderOne:
		return "# "
	case content.BlockHeaderTwo:
		return "## "
	case content.BlockHeaderThree:
		return "### "
	case content.BlockHeaderFour:
		return "#### "
	case content.BlockHeaderFive:
		return "##### "
	case content.BlockHeaderSix:
		return "###### "
	case content.BlockBlockquote:
		return "│ "
	case content.BlockCodeBlock:
		return "▏ "
	case content.BlockUnorderedListItem:
		return "• "
	case content.BlockOrderedListItem:
		return strconv.Itoa(ordinal) + ". "
	case content.BlockAtomic:
		return "▣ "
	default:
		return ""
	}
}

// layoutRows splits blocks into rows no wider than width cells. Rows after
// the first of a block are indented by the marker width. width <= 0 disables
// wrapping.
func layoutRows(blocks []*content.Block, width int) []layoutRow {
	rows := make([]layoutRow, 0, len(blocks))
	ordinal := 0
	for bi, b := range blocks {
		if b.Type() == content.BlockOrderedListItem {
			ordinal++
		} else {
			ordinal = 0
		}
		marker := blockMarker(b.Type(), ordinal)
		avail := width - grapheme.Width(marker)
		if width <= 0 || avail <= 0 {
			avail = 0
		}

		chars := b.Characters()
		start, used := 0, 0
		first := true
		for i, ch := range chars {
			w := grapheme.Width(ch.Cluster)
			if avail > 0 && used+w > avail && i > start {
				rows = append(rows, layoutRow{block: bi, start: start, end: i, first: first, marker: marker})
				first = false
				start, used = i, 0
			}
			used += w
		}
		rows = append(rows, layoutRow{block: bi, start: start, end: len(chars), first: first, last: true, marker: marker})
	}
	return rows
}

// prefix returns the text drawn before the row's characters.
func (r layoutRow) prefix() string {
	if r.first {
		return r.marker
	}
	return strings.Repeat(" ", grapheme.Width(r.marker))
}

// holds reports whether a caret at offset in the row's block is drawn on
// this row.
func (r layoutRow) holds(offset int) bool {
	return (offset >= r.start && offset < r.end) || (r.last && offset >= r.end)
}

// rowOf returns the index of the row holding p, or 0.
func rowOf(rows []layoutRow, blocks []*content.Block, p point) int {
	for i, r := range rows {
		if blocks[r.block].Key() == p.key && r.holds(p.offset) {
			return i
		}
	}
	return 0
}
