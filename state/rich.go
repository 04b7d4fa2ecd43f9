package state

import "github.com/iw2rmb/inkwell/content"

// CurrentInlineStyle returns the styles that apply at the selection: the
// pending override if set, otherwise the styles of the character before a
// caret or at the start of a range.
func CurrentInlineStyle(s *EditorState) content.StyleSet {
	if s.override != nil {
		return *s.override
	}
	c := s.content
	sel := s.selection
	b := c.BlockForKey(sel.StartKey())
	if b == nil {
		return content.StyleSet{}
	}
	off := sel.StartOffset()
	if sel.IsCollapsed() {
		if off > 0 {
			return b.StyleAt(off - 1)
		}
		if b.Len() > 0 {
			return b.StyleAt(0)
		}
		return styleAbove(c, b.Key())
	}
	if off < b.Len() {
		return b.StyleAt(off)
	}
	if off > 0 {
		return b.StyleAt(off - 1)
	}
	return styleAbove(c, b.Key())
}

// styleAbove returns the style of the last character of the nearest non-empty
// block before key.
func styleAbove(c *content.Content, key string) content.StyleSet {
	for b := c.BlockBefore(key); b != nil; b = c.BlockBefore(b.Key()) {
		if b.Len() > 0 {
			return b.StyleAt(b.Len() - 1)
		}
	}
	return content.StyleSet{}
}

// ToggleInlineStyle flips name at the selection. On a caret it only changes
// the pending override; on a range it removes name from the whole range when
// the current style has it and applies it otherwise.
func ToggleInlineStyle(s *EditorState, name string) *EditorState {
	current := CurrentInlineStyle(s)
	sel := s.selection
	if sel.IsCollapsed() {
		if current.Has(name) {
			return SetInlineStyleOverride(s, current.Remove(name))
		}
		return SetInlineStyleOverride(s, current.Add(name))
	}
	var next *content.Content
	if current.Has(name) {
		next = content.RemoveInlineStyle(s.content, sel, name)
	} else {
		next = content.ApplyInlineStyle(s.content, sel, name)
	}
	return Push(s, next, ChangeInlineStyle)
}

// CurrentBlockType returns the type of the block at the selection start.
func CurrentBlockType(s *EditorState) string {
	b := s.content.BlockForKey(s.selection.StartKey())
	if b == nil {
		return content.BlockUnstyled
	}
	return b.Type()
}

// ToggleBlockType sets typ on every block in the selection, or resets them to
// unstyled when the current block already has typ. Selections touching an
// atomic block are left alone.
func ToggleBlockType(s *EditorState, typ string) *EditorState {
	c := s.content
	sel := s.selection
	target := sel

	// A range ending at offset 0 of a later block does not touch that block.
	if sel.StartKey() != sel.EndKey() && sel.EndOffset() == 0 {
		if before := c.BlockBefore(sel.EndKey()); before != nil {
			target = c.Select(sel.StartKey(), sel.StartOffset(), before.Key(), before.Len())
		}
	}

	first, ok := c.BlockIndex(target.StartKey())
	if !ok {
		return s
	}
	last, ok := c.BlockIndex(target.EndKey())
	if !ok {
		return s
	}
	blocks := c.Blocks()
	for i := first; i <= last && i < len(blocks); i++ {
		if blocks[i].Type() == content.BlockAtomic {
			return s
		}
	}

	next := typ
	if CurrentBlockType(s) == typ {
		next = content.BlockUnstyled
	}
	return Push(s, content.SetBlockType(c, target, next), ChangeBlockType)
}
