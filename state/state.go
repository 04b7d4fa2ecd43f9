package state

import (
	"slices"

	"github.com/iw2rmb/inkwell/content"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables history
}

// EditorState is an immutable editor value.
type EditorState struct {
	content   *content.Content
	selection content.Selection

	undo []*content.Content
	redo []*content.Content

	lastChange ChangeType
	override   *content.StyleSet

	opt Options
}

// New creates a state for c with a caret at the start of the first block.
func New(c *content.Content, opt Options) *EditorState {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	if c == nil {
		c = content.FromBlocks()
	}
	return &EditorState{
		content:   c,
		selection: content.Collapsed(c.FirstBlock().Key(), 0),
		opt:       opt,
	}
}

// FromText is shorthand for New(content.FromText(text), opt).
func FromText(text string, opt Options) *EditorState {
	return New(content.FromText(text), opt)
}

func (s *EditorState) Content() *content.Content { return s.content }

func (s *EditorState) Selection() content.Selection { return s.selection }

func (s *EditorState) LastChangeType() ChangeType { return s.lastChange }

// InlineStyleOverride returns the style set pending for the next typed text,
// if any.
func (s *EditorState) InlineStyleOverride() (content.StyleSet, bool) {
	if s.override == nil {
		return content.StyleSet{}, false
	}
	return *s.override, true
}

func (s *EditorState) CanUndo() bool { return len(s.undo) > 0 }

func (s *EditorState) CanRedo() bool { return len(s.redo) > 0 }

func (s *EditorState) clone() *EditorState {
	ns := *s
	return &ns
}

// Push adopts next as the current content under change type t.
//
// Pushing the current content returns s. Otherwise s's content is recorded
// for undo unless t continues a run of the same character-level change, redo
// is cleared, and the selection moves to next.SelectionAfter().
func Push(s *EditorState, next *content.Content, t ChangeType) *EditorState {
	if next == nil || next == s.content {
		return s
	}
	ns := s.clone()

	boundary := s.selection != s.content.SelectionAfter() || t != s.lastChange || !t.coalesces()
	if boundary {
		ns.undo = pushLimited(s.undo, s.content, s.opt.HistoryLimit)
		next = next.WithSelectionBefore(s.selection)
	} else {
		next = next.WithSelectionBefore(s.content.SelectionBefore())
	}

	ns.content = next
	ns.selection = next.SelectionAfter()
	ns.redo = nil
	ns.lastChange = t
	if !t.keepsStyleOverride() {
		ns.override = nil
	}
	return ns
}

func pushLimited(stack []*content.Content, c *content.Content, limit int) []*content.Content {
	if limit <= 0 {
		return stack
	}
	out := append(slices.Clip(stack), c)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Undo restores the content before the latest undo step.
func Undo(s *EditorState) *EditorState {
	if len(s.undo) == 0 {
		return s
	}
	i := len(s.undo) - 1
	ns := s.clone()
	ns.content = s.undo[i]
	ns.undo = slices.Clip(s.undo[:i])
	ns.redo = append(slices.Clip(s.redo), s.content)
	ns.selection = s.content.SelectionBefore()
	ns.lastChange = ChangeUndo
	ns.override = nil
	return ns
}

// Redo re-applies the most recently undone content.
func Redo(s *EditorState) *EditorState {
	if len(s.redo) == 0 {
		return s
	}
	i := len(s.redo) - 1
	ns := s.clone()
	ns.content = s.redo[i]
	ns.redo = slices.Clip(s.redo[:i])
	ns.undo = pushLimited(s.undo, s.content, s.opt.HistoryLimit)
	ns.selection = ns.content.SelectionAfter()
	ns.lastChange = ChangeRedo
	ns.override = nil
	return ns
}

// AcceptSelection moves the selection. A pending inline style is dropped when
// the selection actually changes.
func AcceptSelection(s *EditorState, sel content.Selection) *EditorState {
	if sel == s.selection {
		return s
	}
	ns := s.clone()
	ns.selection = sel
	ns.override = nil
	return ns
}

// SetInlineStyleOverride sets the style set applied to the next typed text.
func SetInlineStyleOverride(s *EditorState, styles content.StyleSet) *EditorState {
	if s.override != nil && s.override.Equal(styles) {
		return s
	}
	ns := s.clone()
	ns.override = &styles
	return ns
}

// ForceSelection moves the selection and marks it focused so a host renders
// the caret even when the selection value is unchanged.
func ForceSelection(s *EditorState, sel content.Selection) *EditorState {
	sel.Focused = true
	ns := s.clone()
	ns.selection = sel
	ns.override = nil
	return ns
}
