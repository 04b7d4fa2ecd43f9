package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/editor"
	"github.com/iw2rmb/inkwell/internal/docstore"
)

type EditCmd struct {
	ID    string `arg:"" optional:"" help:"Document id"`
	Title string `help:"Title for a new document" default:"untitled"`
}

func (c *EditCmd) Run(a *app) error {
	log, err := a.logger(true)
	if err != nil {
		return err
	}
	store, err := a.openStore(log)
	if err != nil {
		return err
	}

	doc := content.FromText("")
	if c.ID != "" {
		if doc, _, err = store.Load(context.Background(), c.ID); err != nil {
			return err
		}
	}

	s := newSession(store, log, c.ID, c.Title, editor.Config{
		Content:         doc,
		HistoryLimit:    a.cfg.Editor.HistoryLimit,
		ExclusiveStyles: a.cfg.Editor.ExclusiveStyles,
		ShowStatus:      a.cfg.Editor.ShowStatus,
		Style:           editor.DefaultStyle(),
		Logger:          log,
	})
	p := tea.NewProgram(s, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(session).err
}

type saveDoneMsg struct {
	id  string
	rev int
	err error
}

// session hosts the editor and saves to the store on ctrl+s and on quit.
type session struct {
	editor editor.Model
	store  *docstore.Store
	log    *zap.SugaredLogger

	id       string
	title    string
	saved    *content.Content
	message  string
	quitting bool
	err      error

	save, quit key.Binding
}

func newSession(store *docstore.Store, log *zap.SugaredLogger, id, title string, cfg editor.Config) session {
	m := editor.New(cfg)
	return session{
		editor: m,
		store:  store,
		log:    log,
		id:     id,
		title:  title,
		saved:  m.State().Content(),
		save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		quit:   key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "save and quit")),
	}
}

func (s session) Init() tea.Cmd { return nil }

func (s session) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.editor = s.editor.SetSize(msg.Width, msg.Height-1)
		return s, nil
	case tea.KeyMsg:
		if !s.editor.Prompting() {
			switch {
			case key.Matches(msg, s.save):
				cmd := s.saveCmd()
				return s, cmd
			case key.Matches(msg, s.quit), msg.Type == tea.KeyEsc:
				s.quitting = true
				if s.dirty() {
					cmd := s.saveCmd()
					return s, cmd
				}
				return s, tea.Quit
			}
		}
	case saveDoneMsg:
		if msg.err != nil {
			s.err = msg.err
			s.message = "save failed: " + msg.err.Error()
			s.log.Errorw("save failed", "id", s.id, "error", msg.err)
			return s, tea.Quit
		}
		s.id = msg.id
		s.message = fmt.Sprintf("saved %s rev %d", msg.id, msg.rev)
		if s.quitting {
			return s, tea.Quit
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	return s, cmd
}

func (s session) View() string {
	status := s.message
	if s.id == "" {
		status = "new document · " + status
	} else if s.dirty() {
		status = "modified · " + status
	}
	return s.editor.View() + "\n" + lipgloss.NewStyle().Faint(true).Render(status)
}

func (s session) dirty() bool {
	return s.editor.State().Content() != s.saved
}

// saveCmd stores the current content. The first save of a new document
// creates it. The session's saved snapshot is updated before the command runs
// so that saveDoneMsg only has to report the outcome.
func (s *session) saveCmd() tea.Cmd {
	c := s.editor.State().Content()
	s.saved = c
	id, title, store := s.id, s.title, s.store
	return func() tea.Msg {
		ctx := context.Background()
		if id == "" {
			newID, err := store.Create(ctx, title, c)
			return saveDoneMsg{id: newID, rev: 1, err: err}
		}
		rev, _, err := store.Save(ctx, id, c)
		return saveDoneMsg{id: id, rev: rev, err: err}
	}
}
