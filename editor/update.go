package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/state"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.edit(func(s *state.EditorState) *state.EditorState { return insertFragment(s, string(msg.Runes)) })
		return m, nil
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		m.move(move{unit: moveChar, dir: dirBack})
	case key.Matches(msg, km.Right):
		m.move(move{unit: moveChar, dir: dirForward})
	case key.Matches(msg, km.Up):
		m.move(move{unit: moveBlock, dir: dirBack})
	case key.Matches(msg, km.Down):
		m.move(move{unit: moveBlock, dir: dirForward})

	case key.Matches(msg, km.ShiftLeft):
		m.move(move{unit: moveChar, dir: dirBack, extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.move(move{unit: moveChar, dir: dirForward, extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.move(move{unit: moveBlock, dir: dirBack, extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.move(move{unit: moveBlock, dir: dirForward, extend: true})

	case key.Matches(msg, km.WordLeft):
		m.move(move{unit: moveWord, dir: dirBack})
	case key.Matches(msg, km.WordRight):
		m.move(move{unit: moveWord, dir: dirForward})

	case key.Matches(msg, km.Home):
		m.move(move{unit: moveEdge, dir: dirBack})
	case key.Matches(msg, km.End):
		m.move(move{unit: moveEdge, dir: dirForward})

	case key.Matches(msg, km.Backspace):
		m.edit(backspace)
	case key.Matches(msg, km.Delete):
		m.edit(deleteForward)
	case key.Matches(msg, km.Enter):
		m.edit(splitBlock)

	case key.Matches(msg, km.Undo):
		m.edit(state.Undo)
	case key.Matches(msg, km.Redo):
		m.edit(state.Redo)

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		m.edit(removeSelection)
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	case key.Matches(msg, km.Link):
		return m.openLinkPrompt()
	case key.Matches(msg, km.Unlink):
		if !m.cfg.ReadOnly {
			m.link.Remove()
		}

	default:
		if m.toggleStyleOrBlock(msg) {
			return m, nil
		}
		if msg.Type == tea.KeyTab {
			m.edit(func(s *state.EditorState) *state.EditorState { return insertText(s, "\t") })
			return m, nil
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.edit(func(s *state.EditorState) *state.EditorState { return insertText(s, string(msg.Runes)) })
		}
	}

	return m, nil
}

func (m Model) move(mv move) {
	m.store.Update(func(prev *state.EditorState) *state.EditorState {
		return moveSelection(prev, mv)
	})
}

// edit applies fn to the store unless the editor is read-only.
func (m Model) edit(fn func(*state.EditorState) *state.EditorState) {
	if m.cfg.ReadOnly {
		return
	}
	m.store.Update(fn)
}

func (m Model) toggleStyleOrBlock(msg tea.KeyMsg) bool {
	for name, b := range m.cfg.KeyMap.Styles {
		if !key.Matches(msg, b) {
			continue
		}
		if !m.cfg.ReadOnly {
			m.toggleStyle(name)
		}
		return true
	}
	for typ, b := range m.cfg.KeyMap.Blocks {
		if !key.Matches(msg, b) {
			continue
		}
		if !m.cfg.ReadOnly {
			m.block.Toggle(typ)
		}
		return true
	}
	return false
}

// toggleStyle routes names in Config.ExclusiveStyles through the exclusive
// binding so they clear each other; other styles stack freely.
func (m Model) toggleStyle(name string) {
	for _, ex := range m.cfg.ExclusiveStyles {
		if ex == name {
			m.exclusive.Toggle(name)
			return
		}
	}
	m.inline.Toggle(name)
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	s := m.store.State()
	text := selectedText(s.Content(), s.Selection())
	if text == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(text)
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil {
		return
	}
	text, err := m.cfg.Clipboard.ReadText()
	if err != nil || text == "" {
		return
	}
	m.edit(func(s *state.EditorState) *state.EditorState { return insertFragment(s, text) })
}
