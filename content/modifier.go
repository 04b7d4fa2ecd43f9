package content

import (
	"slices"
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// span is a selection resolved against block positions.
type span struct {
	first, last int
	start, end  int
}

func (c *Content) span(sel Selection) (span, bool) {
	first, ok := c.index[sel.StartKey()]
	if !ok {
		return span{}, false
	}
	last, ok := c.index[sel.EndKey()]
	if !ok {
		return span{}, false
	}
	start, end := sel.StartOffset(), sel.EndOffset()
	if last < first || (last == first && end < start) {
		first, last = last, first
		start, end = end, start
	}
	return span{
		first: first,
		last:  last,
		start: clampInt(start, 0, c.blocks[first].Len()),
		end:   clampInt(end, 0, c.blocks[last].Len()),
	}, true
}

// bounds returns the character range the span covers within block i.
func (s span) bounds(i int, b *Block) (int, int) {
	from, to := 0, b.Len()
	if i == s.first {
		from = s.start
	}
	if i == s.last {
		to = s.end
	}
	return from, max(from, to)
}

func sameCharacter(a, b Character) bool {
	return a.Cluster == b.Cluster && a.Entity == b.Entity && a.Style.Equal(b.Style)
}

// mapCharacters rewrites every character in sel with fn. It returns c itself
// when no character changes.
func mapCharacters(c *Content, sel Selection, fn func(Character) Character) *Content {
	sp, ok := c.span(sel)
	if !ok {
		return c
	}
	var blocks []*Block
	for i := sp.first; i <= sp.last; i++ {
		b := c.blocks[i]
		from, to := sp.bounds(i, b)
		var chars []Character
		for j := from; j < to; j++ {
			next := fn(b.chars[j])
			if sameCharacter(next, b.chars[j]) {
				continue
			}
			if chars == nil {
				chars = slices.Clone(b.chars)
			}
			chars[j] = next
		}
		if chars == nil {
			continue
		}
		if blocks == nil {
			blocks = slices.Clone(c.blocks)
		}
		blocks[i] = b.withChars(chars)
	}
	if blocks == nil {
		return c
	}
	nc := c.replaceBlocks(blocks)
	nc.selBefore = sel
	nc.selAfter = sel
	return nc
}

// replaceBlocks swaps blocks whose keys and order are unchanged.
func (c *Content) replaceBlocks(blocks []*Block) *Content {
	nc := c.clone()
	nc.blocks = blocks
	return nc
}

// ApplyEntity sets the entity reference of every character in sel to key.
// Passing NoEntity detaches whatever entity the range referenced; the entity
// record itself stays in the table.
func ApplyEntity(c *Content, sel Selection, key EntityKey) *Content {
	return mapCharacters(c, sel, func(ch Character) Character {
		ch.Entity = key
		return ch
	})
}

// ApplyInlineStyle adds name to every character in sel.
func ApplyInlineStyle(c *Content, sel Selection, name string) *Content {
	return mapCharacters(c, sel, func(ch Character) Character {
		ch.Style = ch.Style.Add(name)
		return ch
	})
}

// RemoveInlineStyle removes name from every character in sel.
func RemoveInlineStyle(c *Content, sel Selection, name string) *Content {
	return mapCharacters(c, sel, func(ch Character) Character {
		ch.Style = ch.Style.Remove(name)
		return ch
	})
}

// SetBlockType sets the type of every block touched by sel.
func SetBlockType(c *Content, sel Selection, typ string) *Content {
	sp, ok := c.span(sel)
	if !ok {
		return c
	}
	var blocks []*Block
	for i := sp.first; i <= sp.last; i++ {
		nb := c.blocks[i].withType(typ)
		if nb == c.blocks[i] {
			continue
		}
		if blocks == nil {
			blocks = slices.Clone(c.blocks)
		}
		blocks[i] = nb
	}
	if blocks == nil {
		return c
	}
	nc := c.replaceBlocks(blocks)
	nc.selBefore = sel
	nc.selAfter = sel
	return nc
}

// RemoveRange deletes the characters in sel, joining the first and last
// touched blocks. A partially covered immutable entity is removed whole.
func RemoveRange(c *Content, sel Selection) *Content {
	if sel.IsCollapsed() {
		return c
	}
	sp, ok := c.span(sel)
	if !ok {
		return c
	}
	first, last := c.blocks[sp.first], c.blocks[sp.last]
	start := c.immutableRunStart(first, sp.start)
	end := c.immutableRunEnd(last, sp.end)
	if sp.first == sp.last && start == end {
		return c
	}

	chars := make([]Character, 0, start+last.Len()-end)
	chars = append(chars, first.chars[:start]...)
	chars = append(chars, last.chars[end:]...)

	blocks := make([]*Block, 0, len(c.blocks)-(sp.last-sp.first))
	blocks = append(blocks, c.blocks[:sp.first]...)
	blocks = append(blocks, first.withChars(chars))
	blocks = append(blocks, c.blocks[sp.last+1:]...)

	nc := c.withBlocks(blocks)
	nc.selBefore = sel
	nc.selAfter = Collapsed(first.key, start)
	nc.selAfter.Focused = sel.Focused
	return nc
}

func (c *Content) immutableRunStart(b *Block, offset int) int {
	key := b.EntityAt(offset)
	if key == NoEntity || b.EntityAt(offset-1) != key || !c.isImmutable(key) {
		return offset
	}
	for offset > 0 && b.chars[offset-1].Entity == key {
		offset--
	}
	return offset
}

func (c *Content) immutableRunEnd(b *Block, offset int) int {
	key := b.EntityAt(offset - 1)
	if key == NoEntity || b.EntityAt(offset) != key || !c.isImmutable(key) {
		return offset
	}
	for offset < len(b.chars) && b.chars[offset].Entity == key {
		offset++
	}
	return offset
}

func (c *Content) isImmutable(key EntityKey) bool {
	e, ok := c.entities[key]
	return ok && e.Mutability == Immutable
}

// InsertText inserts text at sel, replacing the selected range first when sel
// is not collapsed. Every inserted character carries style and key. Line
// breaks in text are inserted as spaces; use SplitBlock to break blocks.
func InsertText(c *Content, sel Selection, text string, style StyleSet, key EntityKey) *Content {
	target := sel
	if !sel.IsCollapsed() {
		c = RemoveRange(c, sel)
		target = c.SelectionAfter()
	}
	i, ok := c.index[target.AnchorKey]
	if !ok {
		return c
	}
	clusters := grapheme.Split(lineBreaks.Replace(text))
	if len(clusters) == 0 {
		return c
	}
	b := c.blocks[i]
	off := clampInt(target.AnchorOffset, 0, b.Len())

	ins := make([]Character, len(clusters))
	for j, cl := range clusters {
		ins[j] = Character{Cluster: cl, Style: style, Entity: key}
	}
	blocks := slices.Clone(c.blocks)
	blocks[i] = b.withChars(slices.Concat(b.chars[:off], ins, b.chars[off:]))

	nc := c.replaceBlocks(blocks)
	nc.selBefore = sel
	nc.selAfter = Collapsed(b.key, off+len(ins))
	nc.selAfter.Focused = sel.Focused
	return nc
}

// SplitBlock breaks the block at sel into two, removing a selected range
// first. The new block keeps the type and depth of the original.
func SplitBlock(c *Content, sel Selection) *Content {
	target := sel
	if !sel.IsCollapsed() {
		c = RemoveRange(c, sel)
		target = c.SelectionAfter()
	}
	i, ok := c.index[target.AnchorKey]
	if !ok {
		return c
	}
	b := c.blocks[i]
	off := clampInt(target.AnchorOffset, 0, b.Len())

	head := b.withChars(slices.Clone(b.chars[:off]))
	tail := &Block{
		key:   newBlockKey(c.index),
		typ:   b.typ,
		depth: b.depth,
		chars: slices.Clone(b.chars[off:]),
	}
	blocks := make([]*Block, 0, len(c.blocks)+1)
	blocks = append(blocks, c.blocks[:i]...)
	blocks = append(blocks, head, tail)
	blocks = append(blocks, c.blocks[i+1:]...)

	nc := c.withBlocks(blocks)
	nc.selBefore = sel
	nc.selAfter = Collapsed(tail.key, 0)
	nc.selAfter.Focused = sel.Focused
	return nc
}

// EntityKeyForSelection returns the entity that text typed at sel should
// inherit: a mutable entity surrounding a caret, or the mutable entity at the
// start of a range.
func EntityKeyForSelection(c *Content, sel Selection) EntityKey {
	var key EntityKey
	if sel.IsCollapsed() {
		b := c.BlockForKey(sel.AnchorKey)
		off := sel.AnchorOffset
		if b == nil || off <= 0 {
			return NoEntity
		}
		key = b.EntityAt(off - 1)
		if key != b.EntityAt(off) {
			return NoEntity
		}
	} else {
		b := c.BlockForKey(sel.StartKey())
		if b == nil {
			return NoEntity
		}
		key = b.EntityAt(sel.StartOffset())
	}
	if key == NoEntity {
		return NoEntity
	}
	if e, ok := c.entities[key]; !ok || e.Mutability != Mutable {
		return NoEntity
	}
	return key
}
