package editor

import (
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/content"
)

var ansiRE = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")

func stripANSI(s string) string { return ansiRE.ReplaceAllString(s, "") }

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func keys(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func alt(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true} }

func firstKey(m Model) string { return m.State().Content().FirstBlock().Key() }

func caretAt(t *testing.T, m Model, key string, offset int) {
	t.Helper()
	sel := m.State().Selection()
	if !sel.IsCollapsed() || sel.FocusKey != key || sel.FocusOffset != offset {
		t.Fatalf("selection: got %+v, want caret at (%s,%d)", sel, key, offset)
	}
}

func blockTexts(c *content.Content) []string {
	var out []string
	for _, b := range c.Blocks() {
		out = append(out, b.Text())
	}
	return out
}
