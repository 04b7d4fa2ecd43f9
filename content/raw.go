package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// RawContent is the JSON-friendly form of a snapshot. Offsets and lengths
// count grapheme clusters.
type RawContent struct {
	Blocks    []RawBlock           `json:"blocks"`
	EntityMap map[string]RawEntity `json:"entityMap"`
}

type RawBlock struct {
	Key               string           `json:"key"`
	Text              string           `json:"text"`
	Type              string           `json:"type"`
	Depth             int              `json:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges"`
}

type RawStyleRange struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Style  string `json:"style"`
}

type RawEntityRange struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
	Key    int `json:"key"`
}

type RawEntity struct {
	Type       string         `json:"type"`
	Mutability Mutability     `json:"mutability"`
	Data       map[string]any `json:"data"`
}

// ToRaw converts c into its raw form. Only entities referenced by some
// character are exported; they are renumbered from 0 in order of appearance.
func ToRaw(c *Content) RawContent {
	raw := RawContent{
		Blocks:    make([]RawBlock, 0, len(c.blocks)),
		EntityMap: map[string]RawEntity{},
	}
	numbers := map[EntityKey]int{}
	for _, b := range c.blocks {
		rb := RawBlock{
			Key:               b.key,
			Text:              b.Text(),
			Type:              b.typ,
			Depth:             b.depth,
			InlineStyleRanges: rawStyleRanges(b),
			EntityRanges:      []RawEntityRange{},
		}
		b.FindEntityRanges(func(ch Character) bool { return ch.Entity != NoEntity }, func(start, end int) {
			key := b.chars[start].Entity
			n, ok := numbers[key]
			if !ok {
				n = len(numbers)
				numbers[key] = n
				e := c.entities[key]
				raw.EntityMap[strconv.Itoa(n)] = RawEntity{
					Type:       e.Type,
					Mutability: e.Mutability,
					Data:       e.clone().Data,
				}
			}
			rb.EntityRanges = append(rb.EntityRanges, RawEntityRange{Offset: start, Length: end - start, Key: n})
		})
		raw.Blocks = append(raw.Blocks, rb)
	}
	return raw
}

func rawStyleRanges(b *Block) []RawStyleRange {
	out := []RawStyleRange{}
	seen := map[string]bool{}
	var names []string
	for _, ch := range b.chars {
		for _, n := range ch.Style.names {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	for _, name := range names {
		start := -1
		for i := 0; i <= len(b.chars); i++ {
			has := i < len(b.chars) && b.chars[i].Style.Has(name)
			switch {
			case has && start < 0:
				start = i
			case !has && start >= 0:
				out = append(out, RawStyleRange{Offset: start, Length: i - start, Style: name})
				start = -1
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// FromRaw rebuilds a snapshot from its raw form.
func FromRaw(raw RawContent) (*Content, error) {
	c := FromBlocks()
	keys := map[int]EntityKey{}

	rawKeys := make([]int, 0, len(raw.EntityMap))
	for k := range raw.EntityMap {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("entity map key %q: %w", k, err)
		}
		rawKeys = append(rawKeys, n)
	}
	sort.Ints(rawKeys)
	for _, n := range rawKeys {
		re := raw.EntityMap[strconv.Itoa(n)]
		var key EntityKey
		c, key = c.CreateEntity(re.Type, re.Mutability, re.Data)
		keys[n] = key
	}

	blocks := make([]*Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		b := NewBlock(rb.Key, rb.Type, rb.Text)
		b.depth = rb.Depth
		for _, r := range rb.InlineStyleRanges {
			if err := checkRange(r.Offset, r.Length, b.Len()); err != nil {
				return nil, fmt.Errorf("block %d style %q: %w", i, r.Style, err)
			}
			for j := r.Offset; j < r.Offset+r.Length; j++ {
				b.chars[j].Style = b.chars[j].Style.Add(r.Style)
			}
		}
		for _, r := range rb.EntityRanges {
			if err := checkRange(r.Offset, r.Length, b.Len()); err != nil {
				return nil, fmt.Errorf("block %d entity %d: %w", i, r.Key, err)
			}
			key, ok := keys[r.Key]
			if !ok {
				return nil, fmt.Errorf("block %d: entity %d not in entity map", i, r.Key)
			}
			for j := r.Offset; j < r.Offset+r.Length; j++ {
				b.chars[j].Entity = key
			}
		}
		blocks = append(blocks, b)
	}

	out := FromBlocks(blocks...)
	out.entities = c.entities
	out.entitySeq = c.entitySeq
	out.lastEntity = c.lastEntity
	return out, nil
}

func checkRange(offset, length, size int) error {
	if offset < 0 || length < 0 || offset+length > size {
		return fmt.Errorf("range [%d,%d) outside text of length %d", offset, offset+length, size)
	}
	return nil
}

// MarshalJSON encodes c in its raw form.
func (c *Content) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToRaw(c))
}

// Unmarshal decodes a raw JSON document.
func Unmarshal(data []byte) (*Content, error) {
	var raw RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode raw content: %w", err)
	}
	return FromRaw(raw)
}

