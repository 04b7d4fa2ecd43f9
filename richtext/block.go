package richtext

import "github.com/iw2rmb/inkwell/state"

// ToggleBlockType sets typ on the blocks of the selection, or resets them to
// unstyled when the start block already has typ.
func ToggleBlockType(typ string, s *state.EditorState) *state.EditorState {
	return state.ToggleBlockType(s, typ)
}

// CurrentBlockType returns the type of the block at the selection start.
func CurrentBlockType(s *state.EditorState) string {
	return state.CurrentBlockType(s)
}

// Block toggles block types on a store.
type Block struct {
	store   Store
	current memo[*state.EditorState, string]
}

// NewBlock binds block-type toggling to store.
func NewBlock(store Store) *Block {
	return &Block{store: store}
}

// Toggle sets the selected blocks to typ, or back to unstyled when they
// already have it.
func (b *Block) Toggle(typ string) {
	b.store.Update(func(prev *state.EditorState) *state.EditorState {
		return ToggleBlockType(typ, prev)
	})
}

// Current returns the type of the block at the selection start.
func (b *Block) Current() string {
	s := b.store.State()
	return b.current.get(s, func() string { return CurrentBlockType(s) })
}
