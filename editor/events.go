package editor

import (
	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/richtext"
	"github.com/iw2rmb/inkwell/state"
)

type ChangeEvent struct {
	ChangeType     state.ChangeType
	ContentChanged bool
	Selection      content.Selection

	// Derived reads at the new selection.
	Styles    content.StyleSet
	BlockType string

	// Plain text of the document, blocks joined by "\n".
	Text string
}

func buildChangeEvent(ev richtext.ChangeEvent) ChangeEvent {
	s := ev.State
	return ChangeEvent{
		ChangeType:     ev.ChangeType,
		ContentChanged: ev.ContentChanged,
		Selection:      s.Selection(),
		Styles:         state.CurrentInlineStyle(s),
		BlockType:      state.CurrentBlockType(s),
		Text:           s.Content().PlainText(),
	}
}
