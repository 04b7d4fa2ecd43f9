package richtext

import (
	"github.com/iw2rmb/inkwell/content"
	"github.com/iw2rmb/inkwell/state"
)

func newContainer(blocks ...*content.Block) *Container {
	return NewContainer(state.New(content.FromBlocks(blocks...), state.Options{}))
}

func selectRange(c *Container, anchorKey string, anchorOffset int, focusKey string, focusOffset int) {
	c.Update(func(prev *state.EditorState) *state.EditorState {
		return state.AcceptSelection(prev, prev.Content().Select(anchorKey, anchorOffset, focusKey, focusOffset))
	})
}

func caret(c *Container, key string, offset int) {
	selectRange(c, key, offset, key, offset)
}

func entitiesOf(b *content.Block) []content.EntityKey {
	out := make([]content.EntityKey, b.Len())
	for i := range out {
		out[i] = b.EntityAt(i)
	}
	return out
}

func stylesOf(b *content.Block) []string {
	out := make([]string, b.Len())
	for i := range out {
		out[i] = b.StyleAt(i).String()
	}
	return out
}
