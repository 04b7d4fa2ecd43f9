package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LinkData is the payload of a link entity.
type LinkData map[string]any

func (d LinkData) URL() string {
	s, _ := d["url"].(string)
	return s
}

func newLinkPrompt() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "link: "
	ti.Placeholder = "https://"
	return ti
}

func (m Model) openLinkPrompt() (Model, tea.Cmd) {
	if m.cfg.ReadOnly {
		return m, nil
	}
	url := ""
	if d, ok := m.link.Data(); ok {
		url = d.URL()
	}
	m.prompt.SetValue(url)
	m.prompt.CursorEnd()
	m.prompting = true
	m.resize()
	return m, m.prompt.Focus()
}

func (m Model) closeLinkPrompt() Model {
	m.prompt.Blur()
	m.prompt.Reset()
	m.prompting = false
	m.resize()
	return m
}

// updatePrompt handles keys while the link prompt is open. Submitting a URL
// edits the link under a range selection, links the range, or inserts the URL
// as linked text at a caret.
func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		url := strings.TrimSpace(m.prompt.Value())
		m = m.closeLinkPrompt()
		if url != "" {
			m.link.Upsert(LinkData{"url": url}, url)
		}
		return m, nil
	case tea.KeyEsc:
		return m.closeLinkPrompt(), nil
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}
