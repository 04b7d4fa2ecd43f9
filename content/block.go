package content

import (
	"slices"
	"strings"

	"github.com/iw2rmb/inkwell/internal/grapheme"
)

// Block type tags. Any other non-empty tag is accepted as-is.
const (
	BlockUnstyled          = "unstyled"
	BlockHeaderOne         = "header-one"
	BlockHeaderTwo         = "header-two"
	BlockHeaderThree       = "header-three"
	BlockHeaderFour        = "header-four"
	BlockHeaderFive        = "header-five"
	BlockHeaderSix         = "header-six"
	BlockBlockquote        = "blockquote"
	BlockCodeBlock         = "code-block"
	BlockUnorderedListItem = "unordered-list-item"
	BlockOrderedListItem   = "ordered-list-item"
	BlockAtomic            = "atomic"
)

// Character is one grapheme cluster with its inline metadata.
type Character struct {
	Cluster string
	Style   StyleSet
	Entity  EntityKey
}

// Block is an immutable structural unit of a document.
type Block struct {
	key   string
	typ   string
	depth int
	chars []Character
}

// NewBlock creates a block with unstyled, entity-free text.
// An empty typ means BlockUnstyled.
func NewBlock(key, typ, text string) *Block {
	if typ == "" {
		typ = BlockUnstyled
	}
	clusters := grapheme.Split(text)
	chars := make([]Character, len(clusters))
	for i, c := range clusters {
		chars[i] = Character{Cluster: c}
	}
	return &Block{key: key, typ: typ, chars: chars}
}

// NewBlockFromChars creates a block from explicit characters.
func NewBlockFromChars(key, typ string, depth int, chars []Character) *Block {
	if typ == "" {
		typ = BlockUnstyled
	}
	return &Block{key: key, typ: typ, depth: depth, chars: slices.Clone(chars)}
}

func (b *Block) Key() string { return b.key }

func (b *Block) Type() string { return b.typ }

func (b *Block) Depth() int { return b.depth }

// Len returns the number of grapheme clusters in the block.
func (b *Block) Len() int { return len(b.chars) }

func (b *Block) Text() string {
	var sb strings.Builder
	for _, ch := range b.chars {
		sb.WriteString(ch.Cluster)
	}
	return sb.String()
}

// TextRange returns the text of clusters [start, end), clamped to the block.
func (b *Block) TextRange(start, end int) string {
	start = clampInt(start, 0, len(b.chars))
	end = clampInt(end, start, len(b.chars))
	var sb strings.Builder
	for _, ch := range b.chars[start:end] {
		sb.WriteString(ch.Cluster)
	}
	return sb.String()
}

func (b *Block) CharAt(offset int) (Character, bool) {
	if offset < 0 || offset >= len(b.chars) {
		return Character{}, false
	}
	return b.chars[offset], true
}

// EntityAt returns the entity reference at offset, or NoEntity when the offset
// is out of range.
func (b *Block) EntityAt(offset int) EntityKey {
	ch, ok := b.CharAt(offset)
	if !ok {
		return NoEntity
	}
	return ch.Entity
}

// StyleAt returns the inline styles at offset, or the empty set when the offset
// is out of range.
func (b *Block) StyleAt(offset int) StyleSet {
	ch, ok := b.CharAt(offset)
	if !ok {
		return StyleSet{}
	}
	return ch.Style
}

func (b *Block) Characters() []Character {
	return slices.Clone(b.chars)
}

// FindEntityRanges calls fn for every maximal run of characters sharing one
// entity reference whose first character satisfies filter.
func (b *Block) FindEntityRanges(filter func(Character) bool, fn func(start, end int)) {
	findRanges(b.chars, func(a, c Character) bool { return a.Entity == c.Entity }, filter, fn)
}

// FindStyleRanges calls fn for every maximal run of characters sharing one
// style set whose first character satisfies filter.
func (b *Block) FindStyleRanges(filter func(Character) bool, fn func(start, end int)) {
	findRanges(b.chars, func(a, c Character) bool { return a.Style.Equal(c.Style) }, filter, fn)
}

func findRanges(chars []Character, same func(a, b Character) bool, filter func(Character) bool, fn func(start, end int)) {
	start := 0
	for i := 1; i <= len(chars); i++ {
		if i < len(chars) && same(chars[start], chars[i]) {
			continue
		}
		if filter == nil || filter(chars[start]) {
			fn(start, i)
		}
		start = i
	}
}

func (b *Block) withType(typ string) *Block {
	if b.typ == typ {
		return b
	}
	nb := *b
	nb.typ = typ
	return &nb
}

func (b *Block) withChars(chars []Character) *Block {
	nb := *b
	nb.chars = chars
	return &nb
}

func (b *Block) withKey(key string) *Block {
	nb := *b
	nb.key = key
	return &nb
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
