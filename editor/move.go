package editor

import (
	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/internal/grapheme"
	"github.com/iw2rmb/inkwell/state"
)

type moveUnit int

const (
	moveChar moveUnit = iota
	moveWord
	moveBlock
	moveEdge
)

type moveDir int

const (
	dirBack moveDir = iota
	dirForward
)

type move struct {
	unit   moveUnit
	dir    moveDir
	extend bool
}

// moveSelection returns s with its focus moved. Without extend the
// selection collapses; a character move from a range collapses to the range
// edge in the move direction.
func moveSelection(s *state.EditorState, mv move) *state.EditorState {
	c := s.Content()
	sel := s.Selection()

	if !mv.extend && !sel.IsCollapsed() && mv.unit == moveChar {
		if mv.dir == dirBack {
			return state.AcceptSelection(s, sel.CollapseToStart())
		}
		return state.AcceptSelection(s, sel.CollapseToEnd())
	}

	from := point{key: sel.FocusKey, offset: sel.FocusOffset}
	var to point
	switch mv.unit {
	case moveChar:
		to = stepChar(c, from, mv.dir)
	case moveWord:
		to = stepWord(c, from, mv.dir)
	case moveBlock:
		to = stepBlock(c, from, mv.dir)
	case moveEdge:
		to = blockEdge(c, from, mv.dir)
	}

	if mv.extend {
		return state.AcceptSelection(s, c.Select(sel.AnchorKey, sel.AnchorOffset, to.key, to.offset))
	}
	return state.AcceptSelection(s, c.Select(to.key, to.offset, to.key, to.offset))
}

func stepChar(c *content.Content, p point, dir moveDir) point {
	b := c.BlockForKey(p.key)
	if b == nil {
		return p
	}
	if dir == dirBack {
		if p.offset > 0 {
			return point{key: p.key, offset: p.offset - 1}
		}
		if prev := c.BlockBefore(p.key); prev != nil {
			return point{key: prev.Key(), offset: prev.Len()}
		}
		return p
	}
	if p.offset < b.Len() {
		return point{key: p.key, offset: p.offset + 1}
	}
	if next := c.BlockAfter(p.key); next != nil {
		return point{key: next.Key(), offset: 0}
	}
	return p
}

// stepWord skips whitespace and then one run of non-space clusters. At a
// block edge it steps into the neighbouring block.
func stepWord(c *content.Content, p point, dir moveDir) point {
	b := c.BlockForKey(p.key)
	if b == nil {
		return p
	}
	off := p.offset
	space := func(i int) bool {
		ch, _ := b.CharAt(i)
		return grapheme.IsSpace(ch.Cluster)
	}
	if dir == dirBack {
		if off == 0 {
			return stepChar(c, p, dir)
		}
		for off > 0 && space(off-1) {
			off--
		}
		for off > 0 && !space(off-1) {
			off--
		}
		return point{key: p.key, offset: off}
	}
	if off == b.Len() {
		return stepChar(c, p, dir)
	}
	for off < b.Len() && space(off) {
		off++
	}
	for off < b.Len() && !space(off) {
		off++
	}
	return point{key: p.key, offset: off}
}

// stepBlock moves to the same offset in the previous or next block, clamped
// to its length.
func stepBlock(c *content.Content, p point, dir moveDir) point {
	var nb *content.Block
	if dir == dirBack {
		nb = c.BlockBefore(p.key)
	} else {
		nb = c.BlockAfter(p.key)
	}
	if nb == nil {
		return blockEdge(c, p, dir)
	}
	return point{key: nb.Key(), offset: clampInt(p.offset, 0, nb.Len())}
}

func blockEdge(c *content.Content, p point, dir moveDir) point {
	b := c.BlockForKey(p.key)
	if b == nil {
		return p
	}
	if dir == dirBack {
		return point{key: p.key, offset: 0}
	}
	return point{key: p.key, offset: b.Len()}
}
