package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/inkwell/content"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	// Inline style toggles, keyed by style name.
	Styles map[string]key.Binding
	// Block type toggles, keyed by block type.
	Blocks map[string]key.Binding

	Link, Unlink key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous block")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next block")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home: key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "block start")),
		End:  key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "block end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "split block")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		// ctrl+i is tab in most terminals, so italic and friends live on alt.
		Styles: map[string]key.Binding{
			content.StyleBold:          key.NewBinding(key.WithKeys("ctrl+b", "alt+b"), key.WithHelp("ctrl+b", "bold")),
			content.StyleItalic:        key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
			content.StyleUnderline:     key.NewBinding(key.WithKeys("ctrl+u", "alt+u"), key.WithHelp("ctrl+u", "underline")),
			content.StyleCode:          key.NewBinding(key.WithKeys("alt+`"), key.WithHelp("alt+`", "code")),
			content.StyleStrikethrough: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),
			content.StyleSuperscript:   key.NewBinding(key.WithKeys("alt+."), key.WithHelp("alt+.", "superscript")),
			content.StyleSubscript:     key.NewBinding(key.WithKeys("alt+,"), key.WithHelp("alt+,", "subscript")),
		},
		Blocks: map[string]key.Binding{
			content.BlockHeaderOne:         key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "heading 1")),
			content.BlockHeaderTwo:         key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "heading 2")),
			content.BlockHeaderThree:       key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "heading 3")),
			content.BlockBlockquote:        key.NewBinding(key.WithKeys("alt+q"), key.WithHelp("alt+q", "quote")),
			content.BlockCodeBlock:         key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "code block")),
			content.BlockUnorderedListItem: key.NewBinding(key.WithKeys("alt+-"), key.WithHelp("alt+-", "bullet list")),
			content.BlockOrderedListItem:   key.NewBinding(key.WithKeys("alt+o"), key.WithHelp("alt+o", "numbered list")),
		},

		Link:   key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "link")),
		Unlink: key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("alt+k", "unlink")),
	}
}
