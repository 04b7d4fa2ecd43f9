package content

import (
	"maps"
	"reflect"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Content is an immutable document snapshot.
type Content struct {
	blocks []*Block
	index  map[string]int

	entities   map[EntityKey]Entity
	entitySeq  int
	lastEntity EntityKey

	selBefore Selection
	selAfter  Selection
}

// FromText builds a snapshot with one unstyled block per line of text.
func FromText(text string) *Content {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	blocks := make([]*Block, 0, len(lines))
	seen := make(map[string]int, len(lines))
	for _, line := range lines {
		key := newBlockKey(seen)
		seen[key] = len(blocks)
		blocks = append(blocks, NewBlock(key, BlockUnstyled, line))
	}
	return FromBlocks(blocks...)
}

// FromBlocks builds a snapshot from blocks. Blocks with empty or duplicate keys
// are re-keyed. A snapshot always holds at least one block.
func FromBlocks(blocks ...*Block) *Content {
	out := make([]*Block, 0, max(len(blocks), 1))
	index := make(map[string]int, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		if _, dup := index[b.key]; dup || b.key == "" {
			b = b.withKey(newBlockKey(index))
		}
		index[b.key] = len(out)
		out = append(out, b)
	}
	if len(out) == 0 {
		b := NewBlock(newBlockKey(index), BlockUnstyled, "")
		index[b.key] = 0
		out = append(out, b)
	}
	sel := Collapsed(out[0].key, 0)
	return &Content{
		blocks:    out,
		index:     index,
		entities:  map[EntityKey]Entity{},
		selBefore: sel,
		selAfter:  sel,
	}
}

func newBlockKey(taken map[string]int) string {
	for {
		key := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
		if _, ok := taken[key]; !ok {
			return key
		}
	}
}

// Blocks returns the blocks in document order.
func (c *Content) Blocks() []*Block { return slices.Clone(c.blocks) }

func (c *Content) BlockCount() int { return len(c.blocks) }

// BlockForKey returns the block with key, or nil.
func (c *Content) BlockForKey(key string) *Block {
	i, ok := c.index[key]
	if !ok {
		return nil
	}
	return c.blocks[i]
}

// BlockIndex returns the position of key in document order.
func (c *Content) BlockIndex(key string) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// BlockBefore returns the block preceding key, or nil.
func (c *Content) BlockBefore(key string) *Block {
	i, ok := c.index[key]
	if !ok || i == 0 {
		return nil
	}
	return c.blocks[i-1]
}

// BlockAfter returns the block following key, or nil.
func (c *Content) BlockAfter(key string) *Block {
	i, ok := c.index[key]
	if !ok || i == len(c.blocks)-1 {
		return nil
	}
	return c.blocks[i+1]
}

func (c *Content) FirstBlock() *Block { return c.blocks[0] }

func (c *Content) LastBlock() *Block { return c.blocks[len(c.blocks)-1] }

// PlainText joins block texts with '\n'.
func (c *Content) PlainText() string {
	var sb strings.Builder
	for i, b := range c.blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.Text())
	}
	return sb.String()
}

func (c *Content) HasText() bool {
	return len(c.blocks) > 1 || c.blocks[0].Len() > 0
}

// SelectionBefore is the selection at the moment this snapshot was derived.
func (c *Content) SelectionBefore() Selection { return c.selBefore }

// SelectionAfter is the selection a host should adopt with this snapshot.
func (c *Content) SelectionAfter() Selection { return c.selAfter }

func (c *Content) WithSelectionBefore(sel Selection) *Content {
	if c.selBefore == sel {
		return c
	}
	nc := c.clone()
	nc.selBefore = sel
	return nc
}

func (c *Content) WithSelectionAfter(sel Selection) *Content {
	if c.selAfter == sel {
		return c
	}
	nc := c.clone()
	nc.selAfter = sel
	return nc
}

// Select builds a selection between two positions, clamping offsets into the
// blocks and computing direction. Unknown keys fall back to the first block.
func (c *Content) Select(anchorKey string, anchorOffset int, focusKey string, focusOffset int) Selection {
	ai, ok := c.index[anchorKey]
	if !ok {
		ai, anchorKey = 0, c.blocks[0].key
	}
	fi, ok := c.index[focusKey]
	if !ok {
		fi, focusKey = 0, c.blocks[0].key
	}
	anchorOffset = clampInt(anchorOffset, 0, c.blocks[ai].Len())
	focusOffset = clampInt(focusOffset, 0, c.blocks[fi].Len())
	return Selection{
		AnchorKey:    anchorKey,
		AnchorOffset: anchorOffset,
		FocusKey:     focusKey,
		FocusOffset:  focusOffset,
		Backward:     fi < ai || (fi == ai && focusOffset < anchorOffset),
		Focused:      true,
	}
}

// SelectAll returns a selection covering the whole document.
func (c *Content) SelectAll() Selection {
	last := c.LastBlock()
	return c.Select(c.blocks[0].key, 0, last.key, last.Len())
}

// Entity returns a copy of the entity stored under key.
func (c *Content) Entity(key EntityKey) (Entity, bool) {
	e, ok := c.entities[key]
	if !ok {
		return Entity{}, false
	}
	return e.clone(), true
}

// EntityKeys returns every key in the entity table, attached or not, in
// issue order.
func (c *Content) EntityKeys() []EntityKey {
	keys := slices.Collect(maps.Keys(c.entities))
	sort.Slice(keys, func(i, j int) bool { return entitySeqOf(keys[i]) < entitySeqOf(keys[j]) })
	return keys
}

func entitySeqOf(k EntityKey) int {
	n, err := strconv.Atoi(string(k))
	if err != nil {
		return -1
	}
	return n
}

// LastCreatedEntityKey returns the key issued by the latest CreateEntity.
func (c *Content) LastCreatedEntityKey() EntityKey { return c.lastEntity }

// CreateEntity registers a new entity and returns the successor snapshot with
// its freshly issued key. data is copied.
func (c *Content) CreateEntity(typ string, mutability Mutability, data map[string]any) (*Content, EntityKey) {
	if mutability == "" {
		mutability = Mutable
	}
	nc := c.clone()
	nc.entities = maps.Clone(c.entities)
	nc.entitySeq++
	key := EntityKey(strconv.Itoa(nc.entitySeq))
	nc.entities[key] = Entity{Type: typ, Mutability: mutability, Data: data}.clone()
	nc.lastEntity = key
	return nc, key
}

// MergeEntityData shallow-merges data into the payload of key: keys in data
// overwrite, other keys are kept. Unknown keys return c unchanged.
func (c *Content) MergeEntityData(key EntityKey, data map[string]any) *Content {
	e, ok := c.entities[key]
	if !ok || containsData(e.Data, data) {
		return c
	}
	merged := maps.Clone(e.Data)
	if merged == nil {
		merged = make(map[string]any, len(data))
	}
	maps.Copy(merged, data)
	e.Data = merged
	return c.withEntity(key, e)
}

// containsData reports whether every entry of data is already in have.
func containsData(have, data map[string]any) bool {
	for k, v := range data {
		old, ok := have[k]
		if !ok || !reflect.DeepEqual(old, v) {
			return false
		}
	}
	return true
}

// ReplaceEntityData swaps the payload of key for a copy of data.
func (c *Content) ReplaceEntityData(key EntityKey, data map[string]any) *Content {
	e, ok := c.entities[key]
	if !ok {
		return c
	}
	e.Data = data
	return c.withEntity(key, e.clone())
}

func (c *Content) withEntity(key EntityKey, e Entity) *Content {
	nc := c.clone()
	nc.entities = maps.Clone(c.entities)
	nc.entities[key] = e
	return nc
}

func (c *Content) clone() *Content {
	nc := *c
	return &nc
}

// withBlocks replaces the block list, rebuilding the key index.
func (c *Content) withBlocks(blocks []*Block) *Content {
	nc := c.clone()
	nc.blocks = blocks
	nc.index = make(map[string]int, len(blocks))
	for i, b := range blocks {
		nc.index[b.key] = i
	}
	return nc
}
