package richtext

import (
	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

// SelectedEntityKey returns the entity referenced by the character at the
// selection start, or content.NoEntity.
func SelectedEntityKey(s *state.EditorState) content.EntityKey {
	sel := s.Selection()
	b := s.Content().BlockForKey(sel.StartKey())
	if b == nil {
		return content.NoEntity
	}
	return b.EntityAt(sel.StartOffset())
}

// ExistingEntityOfType returns the entity under key when it has type typ and
// the selection is a range. A caret never selects an entity.
func ExistingEntityOfType(s *state.EditorState, key content.EntityKey, typ string) (content.Entity, bool) {
	if key == content.NoEntity || s.Selection().IsCollapsed() {
		return content.Entity{}, false
	}
	e, ok := s.Content().Entity(key)
	if !ok || e.Type != typ {
		return content.Entity{}, false
	}
	return e, true
}

// FindEntities returns a strategy that reports the runs of b referencing an
// entity of type typ, for decorators that style those runs.
func FindEntities(typ string) func(c *content.Content, b *content.Block, fn func(start, end int)) {
	return func(c *content.Content, b *content.Block, fn func(start, end int)) {
		b.FindEntityRanges(func(ch content.Character) bool {
			if ch.Entity == content.NoEntity {
				return false
			}
			e, ok := c.Entity(ch.Entity)
			return ok && e.Type == typ
		}, fn)
	}
}

// SelectionContainsOnlyEntity reports whether every selected character
// references some entity. A caret selects no characters and reports true.
func SelectionContainsOnlyEntity(s *state.EditorState) bool {
	sel := s.Selection()
	c := s.Content()
	first, ok := c.BlockIndex(sel.StartKey())
	if !ok {
		return false
	}
	last, ok := c.BlockIndex(sel.EndKey())
	if !ok {
		return false
	}
	blocks := c.Blocks()
	for i := first; i <= last; i++ {
		b := blocks[i]
		start, end := 0, b.Len()
		if i == first {
			start = sel.StartOffset()
		}
		if i == last {
			end = sel.EndOffset()
		}
		for off := start; off < end; off++ {
			if b.EntityAt(off) == content.NoEntity {
				return false
			}
		}
	}
	return true
}
