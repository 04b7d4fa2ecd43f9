package editor

import (
	"strings"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

// insertText types text at the selection with the current inline style. The
// text joins a mutable entity it is typed inside of.
func insertText(s *state.EditorState, text string) *state.EditorState {
	c := s.Content()
	sel := s.Selection()
	next := content.InsertText(c, sel, text, state.CurrentInlineStyle(s), content.EntityKeyForSelection(c, sel))
	return state.Push(s, next, state.ChangeInsertCharacters)
}

// insertFragment inserts multi-line text, splitting blocks at line breaks.
func insertFragment(s *state.EditorState, text string) *state.EditorState {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	if !strings.Contains(text, "\n") {
		return insertText(s, text)
	}
	style := state.CurrentInlineStyle(s)
	c := s.Content()
	sel := s.Selection()
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			c = content.SplitBlock(c, sel)
			sel = c.SelectionAfter()
		}
		if line != "" {
			c = content.InsertText(c, sel, line, style, content.NoEntity)
			sel = c.SelectionAfter()
		}
	}
	return state.Push(s, c, state.ChangeInsertFragment)
}

// backspace removes the range, the cluster before a caret, or joins the
// caret's block with the previous one.
func backspace(s *state.EditorState) *state.EditorState {
	c := s.Content()
	sel := s.Selection()
	if !sel.IsCollapsed() {
		return state.Push(s, content.RemoveRange(c, sel), state.ChangeRemoveRange)
	}
	b := c.BlockForKey(sel.AnchorKey)
	if b == nil {
		return s
	}
	var target content.Selection
	if off := sel.AnchorOffset; off > 0 {
		target = c.Select(b.Key(), off-1, b.Key(), off)
	} else {
		prev := c.BlockBefore(b.Key())
		if prev == nil {
			return s
		}
		target = c.Select(prev.Key(), prev.Len(), b.Key(), 0)
	}
	return state.Push(s, content.RemoveRange(c, target), state.ChangeBackspaceCharacter)
}

// deleteForward removes the range, the cluster after a caret, or joins the
// next block into the caret's block.
func deleteForward(s *state.EditorState) *state.EditorState {
	c := s.Content()
	sel := s.Selection()
	if !sel.IsCollapsed() {
		return state.Push(s, content.RemoveRange(c, sel), state.ChangeRemoveRange)
	}
	b := c.BlockForKey(sel.AnchorKey)
	if b == nil {
		return s
	}
	var target content.Selection
	if off := sel.AnchorOffset; off < b.Len() {
		target = c.Select(b.Key(), off, b.Key(), off+1)
	} else {
		next := c.BlockAfter(b.Key())
		if next == nil {
			return s
		}
		target = c.Select(b.Key(), b.Len(), next.Key(), 0)
	}
	return state.Push(s, content.RemoveRange(c, target), state.ChangeDeleteCharacter)
}

func splitBlock(s *state.EditorState) *state.EditorState {
	return state.Push(s, content.SplitBlock(s.Content(), s.Selection()), state.ChangeSplitBlock)
}

func removeSelection(s *state.EditorState) *state.EditorState {
	return state.Push(s, content.RemoveRange(s.Content(), s.Selection()), state.ChangeRemoveRange)
}

// selectedText returns the plain text of the selection, blocks joined by
// "\n".
func selectedText(c *content.Content, sel content.Selection) string {
	span, ok := selectionBounds(c, sel)
	if !ok {
		return ""
	}
	blocks := c.Blocks()
	parts := make([]string, 0, span.last-span.first+1)
	for i := span.first; i <= span.last; i++ {
		start, end := span.colsFor(i, blocks[i].Len())
		parts = append(parts, blocks[i].TextRange(start, end))
	}
	return strings.Join(parts, "\n")
}
