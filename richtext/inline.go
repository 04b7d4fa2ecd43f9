package richtext

import (
	"slices"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

// ToggleInlineStyle flips name at the selection of s. An empty name is
// ignored.
func ToggleInlineStyle(name string, s *state.EditorState) *state.EditorState {
	if name == "" {
		return s
	}
	return state.ToggleInlineStyle(s, name)
}

// ToggleInlineStyles toggles each name in order.
func ToggleInlineStyles(names []string, s *state.EditorState) *state.EditorState {
	for _, name := range names {
		s = ToggleInlineStyle(name, s)
	}
	return s
}

// RemoveInlineStyles clears names from the selection. A collapsed selection
// has no characters to clear, so the names are dropped from the style pending
// for the next typed text instead.
func RemoveInlineStyles(names []string, s *state.EditorState) *state.EditorState {
	sel := s.Selection()
	if sel.IsCollapsed() {
		cur := state.CurrentInlineStyle(s)
		next := cur
		for _, name := range names {
			next = next.Remove(name)
		}
		if next.Equal(cur) {
			return s
		}
		return state.SetInlineStyleOverride(s, next)
	}

	c := s.Content()
	for _, name := range names {
		c = content.RemoveInlineStyle(c, sel, name)
	}
	return state.Push(s, c, state.ChangeInlineStyle)
}

// Inline toggles inline styles on a store. With an exclusive list, toggling
// one of its names first clears the others, like a radio group.
type Inline struct {
	store     Store
	exclusive []string
	current   memo[*state.EditorState, content.StyleSet]
}

// NewInline binds inline-style toggling to store. Names in exclusive clear
// each other when toggled.
func NewInline(store Store, exclusive ...string) *Inline {
	return &Inline{store: store, exclusive: slices.Clone(exclusive)}
}

// Toggle flips name at the selection after clearing the other exclusive
// names. An empty name does nothing.
func (in *Inline) Toggle(name string) {
	in.store.Update(func(prev *state.EditorState) *state.EditorState {
		if name == "" {
			return prev
		}
		next := prev
		if len(in.exclusive) > 0 {
			others := slices.DeleteFunc(slices.Clone(in.exclusive), func(n string) bool { return n == name })
			next = RemoveInlineStyles(others, next)
		}
		return ToggleInlineStyle(name, next)
	})
}

// Current returns the styles active at the selection of the store's state.
func (in *Inline) Current() content.StyleSet {
	s := in.store.State()
	return in.current.get(s, func() content.StyleSet { return state.CurrentInlineStyle(s) })
}

// Has reports whether name is active at the selection.
func (in *Inline) Has(name string) bool { return in.Current().Has(name) }
