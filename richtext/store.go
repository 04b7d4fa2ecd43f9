package richtext

import "github.com/iw2rmb/inkwell/state"

// Store owns the current editor state.
type Store interface {
	State() *state.EditorState
	// Update replaces the state with fn(prev). Implementations must call fn
	// with the state that is current at the time of the call.
	Update(fn func(prev *state.EditorState) *state.EditorState)
}

// ChangeEvent is delivered to Container subscribers after the state changes.
type ChangeEvent struct {
	State          *state.EditorState
	ChangeType     state.ChangeType
	ContentChanged bool
}

// Container is an in-memory Store. It is not safe for concurrent use.
type Container struct {
	cur  *state.EditorState
	subs []func(ChangeEvent)
}

// NewContainer holds s, or an empty document when s is nil.
func NewContainer(s *state.EditorState) *Container {
	if s == nil {
		s = state.New(nil, state.Options{})
	}
	return &Container{cur: s}
}

func (c *Container) State() *state.EditorState { return c.cur }

func (c *Container) Update(fn func(prev *state.EditorState) *state.EditorState) {
	c.Set(fn(c.cur))
}

// Set adopts next. Subscribers are only notified when next differs from the
// current state.
func (c *Container) Set(next *state.EditorState) {
	if next == nil || next == c.cur {
		return
	}
	prev := c.cur
	c.cur = next
	ev := ChangeEvent{
		State:          next,
		ChangeType:     next.LastChangeType(),
		ContentChanged: prev.Content() != next.Content(),
	}
	for _, fn := range c.subs {
		fn(ev)
	}
}

// OnChange registers fn for every future state change.
func (c *Container) OnChange(fn func(ChangeEvent)) {
	if fn != nil {
		c.subs = append(c.subs, fn)
	}
}
