package editor

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/richtext"
	"github.com/iw2rmb/inkwell/state"
)

// Model is a Bubble Tea component that renders and edits a rich-text
// document held in a richtext.Container.
type Model struct {
	cfg   Config
	store *richtext.Container

	inline    *richtext.Inline
	exclusive *richtext.Inline
	block     *richtext.Block
	link      *richtext.Entity[LinkData]

	focused bool
	width   int
	height  int

	viewport viewport.Model
	rows     []layoutRow

	prompt    textinput.Model
	prompting bool

	last *state.EditorState

	mouseAnchor   point
	mouseDragging bool
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()

	c := cfg.Content
	if c == nil {
		c = content.FromText(cfg.Text)
	}
	store := richtext.NewContainer(state.New(c, state.Options{HistoryLimit: cfg.HistoryLimit}))
	if cfg.OnChange != nil {
		onChange := cfg.OnChange
		store.OnChange(func(ev richtext.ChangeEvent) { onChange(buildChangeEvent(ev)) })
	}

	m := Model{
		cfg:       cfg,
		store:     store,
		inline:    richtext.NewInline(store),
		exclusive: richtext.NewInline(store, cfg.ExclusiveStyles...),
		block:     richtext.NewBlock(store),
		link:      richtext.NewEntity[LinkData](store, cfg.LinkType, richtext.WithLogger(cfg.Logger)),
		focused:   true,
		viewport:  viewport.New(0, 0),
		prompt:    newLinkPrompt(),
	}
	m.last = store.State()
	m.rebuildContent()
	return m
}

// Store returns the container holding the editor state. Changes made through
// it are picked up on the next Update.
func (m Model) Store() *richtext.Container { return m.store }

func (m Model) State() *state.EditorState { return m.store.State() }

// Link returns the link controller bound to the editor's store.
func (m Model) Link() *richtext.Entity[LinkData] { return m.link }

func (m Model) Prompting() bool { return m.prompting }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	m.resize()
	m.rebuildContent()
	m.followCursor()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.rebuildContent()
		m.followCursor()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.MouseMsg:
		m, cmd = m.updateMouse(msg)
		// Don't force-follow the cursor here; allow manual scrolling.
		m.syncFromStore()
		return m, cmd
	case tea.KeyMsg:
		if m.prompting {
			m, cmd = m.updatePrompt(msg)
		} else {
			m, cmd = m.updateKey(msg)
		}
	default:
		if m.prompting {
			m.prompt, cmd = m.prompt.Update(msg)
		}
	}
	// Hosts may also change the store outside of the editor.
	if m.syncFromStore() {
		m.followCursor()
	}
	return m, cmd
}

func (m Model) View() string {
	footer := m.footer()
	if footer == "" {
		return m.viewport.View()
	}
	return m.viewport.View() + "\n" + footer
}

func (m *Model) syncFromStore() bool {
	cur := m.store.State()
	if cur == m.last {
		return false
	}
	m.last = cur
	m.rebuildContent()
	return true
}

func (m *Model) resize() {
	h := m.height
	if m.footerRows() > 0 && h > 0 {
		h -= m.footerRows()
		if h < 0 {
			h = 0
		}
	}
	m.viewport.Width = m.width
	m.viewport.Height = h
	if w := m.width - len(m.prompt.Prompt) - 1; w > 0 {
		m.prompt.Width = w
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row := m.cursorRow()
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
