package richtext

import (
	"go.uber.org/zap"

	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

// Payload is the data carried by an entity: a string-keyed map, merged
// key by key on edit.
type Payload interface {
	~map[string]any
}

type entityConfig struct {
	mutability content.Mutability
	log        *zap.SugaredLogger
}

// EntityOption configures an Entity controller.
type EntityOption func(*entityConfig)

// WithMutability sets the mutability of created entities. Default: Mutable.
func WithMutability(m content.Mutability) EntityOption {
	return func(cfg *entityConfig) { cfg.mutability = m }
}

// WithLogger sets the logger for branch decisions. Default: no-op.
func WithLogger(log *zap.SugaredLogger) EntityOption {
	return func(cfg *entityConfig) {
		if log != nil {
			cfg.log = log
		}
	}
}

type entityData[T Payload] struct {
	data T
	ok   bool
}

// Entity manages the lifecycle of one entity type at the selection of a
// store: create and attach, merge new data, detach.
type Entity[T Payload] struct {
	store Store
	typ   string
	cfg   entityConfig
	data  memo[*state.EditorState, entityData[T]]
}

// NewEntity binds the lifecycle of entityType entities to store.
func NewEntity[T Payload](store Store, entityType string, opts ...EntityOption) *Entity[T] {
	cfg := entityConfig{
		mutability: content.Mutable,
		log:        zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Entity[T]{store: store, typ: entityType, cfg: cfg}
}

func (e *Entity[T]) Type() string { return e.typ }

// Upsert edits the entity of this type selected in the store, or creates one
// when the selection holds none. insertText is only used on create with a
// caret; "" means no text.
func (e *Entity[T]) Upsert(data T, insertText string) {
	e.store.Update(func(prev *state.EditorState) *state.EditorState {
		if _, ok := e.existing(prev); ok {
			return e.edit(prev, data)
		}
		return e.create(prev, data, insertText)
	})
}

// Create registers a new entity with data. A range selection gets the entity
// attached to every selected character. A caret gets insertText inserted
// carrying the entity; without insertText nothing changes.
func (e *Entity[T]) Create(data T, insertText string) {
	e.store.Update(func(prev *state.EditorState) *state.EditorState {
		return e.create(prev, data, insertText)
	})
}

// Edit merges data into the payload of the selected entity of this type.
func (e *Entity[T]) Edit(data T) {
	e.store.Update(func(prev *state.EditorState) *state.EditorState {
		return e.edit(prev, data)
	})
}

// Remove detaches the selected entity of this type from the selected range.
// The entity record stays in the content's entity table.
func (e *Entity[T]) Remove() {
	e.store.Update(func(prev *state.EditorState) *state.EditorState {
		if _, ok := e.existing(prev); !ok {
			e.cfg.log.Debugw("entity remove skipped", "type", e.typ)
			return prev
		}
		sel := prev.Selection()
		e.cfg.log.Debugw("entity remove", "type", e.typ, "key", SelectedEntityKey(prev))
		next := content.ApplyEntity(prev.Content(), sel, content.NoEntity)
		return state.Push(prev, next, state.ChangeApplyEntity)
	})
}

// Data returns the payload of the selected entity of this type. The returned
// map is shared between calls for the same state and must not be modified.
func (e *Entity[T]) Data() (T, bool) {
	s := e.store.State()
	d := e.data.get(s, func() entityData[T] {
		ent, ok := e.existing(s)
		if !ok {
			return entityData[T]{}
		}
		return entityData[T]{data: T(ent.Data), ok: true}
	})
	return d.data, d.ok
}

// IsRangeSelected reports whether the store's selection is a range, the
// precondition for Edit and Remove.
func (e *Entity[T]) IsRangeSelected() bool {
	return !e.store.State().Selection().IsCollapsed()
}

func (e *Entity[T]) existing(s *state.EditorState) (content.Entity, bool) {
	return ExistingEntityOfType(s, SelectedEntityKey(s), e.typ)
}

func (e *Entity[T]) create(prev *state.EditorState, data T, insertText string) *state.EditorState {
	sel := prev.Selection()
	switch {
	case !sel.IsCollapsed():
		c, key := prev.Content().CreateEntity(e.typ, e.cfg.mutability, data)
		next := content.ApplyEntity(c, sel, key)
		if next == c {
			e.cfg.log.Debugw("entity create skipped", "type", e.typ, "reason", "range without characters")
			return prev
		}
		e.cfg.log.Debugw("entity create on range", "type", e.typ, "key", key)
		return state.Push(prev, next, state.ChangeApplyEntity)
	case insertText != "":
		c, key := prev.Content().CreateEntity(e.typ, e.cfg.mutability, data)
		e.cfg.log.Debugw("entity create with text", "type", e.typ, "key", key, "text", insertText)
		next := content.InsertText(c, sel, insertText, content.StyleSet{}, key)
		return state.Push(prev, next, state.ChangeInsertCharacters)
	default:
		e.cfg.log.Debugw("entity create skipped", "type", e.typ, "reason", "caret without text")
		return prev
	}
}

func (e *Entity[T]) edit(prev *state.EditorState, data T) *state.EditorState {
	key := SelectedEntityKey(prev)
	if _, ok := ExistingEntityOfType(prev, key, e.typ); !ok {
		e.cfg.log.Debugw("entity edit skipped", "type", e.typ)
		return prev
	}
	merged := prev.Content().MergeEntityData(key, data)
	if merged == prev.Content() {
		e.cfg.log.Debugw("entity edit skipped", "type", e.typ, "reason", "data unchanged")
		return prev
	}
	e.cfg.log.Debugw("entity edit", "type", e.typ, "key", key)
	sel := prev.Selection()
	next := merged.WithSelectionBefore(sel).WithSelectionAfter(sel)
	return state.Push(prev, next, state.ChangeApplyEntity)
}
