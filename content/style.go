package content

import (
	"slices"
	"strings"
)

// Core inline style names understood by the bundled renderers.
const (
	StyleBold          = "BOLD"
	StyleItalic        = "ITALIC"
	StyleUnderline     = "UNDERLINE"
	StyleCode          = "CODE"
	StyleStrikethrough = "STRIKETHROUGH"
	StyleSuperscript   = "SUPERSCRIPT"
	StyleSubscript     = "SUBSCRIPT"
)

// StyleSet is an immutable set of inline style names.
// The zero value is the empty set.
type StyleSet struct {
	names []string // sorted, unique
}

// Styles builds a set from names. Empty names are ignored.
func Styles(names ...string) StyleSet {
	var s StyleSet
	for _, n := range names {
		s = s.Add(n)
	}
	return s
}

func (s StyleSet) Has(name string) bool {
	_, ok := slices.BinarySearch(s.names, name)
	return ok
}

// Add returns a set that also contains name.
func (s StyleSet) Add(name string) StyleSet {
	if name == "" {
		return s
	}
	i, ok := slices.BinarySearch(s.names, name)
	if ok {
		return s
	}
	out := make([]string, 0, len(s.names)+1)
	out = append(out, s.names[:i]...)
	out = append(out, name)
	out = append(out, s.names[i:]...)
	return StyleSet{names: out}
}

// Remove returns a set without name.
func (s StyleSet) Remove(name string) StyleSet {
	i, ok := slices.BinarySearch(s.names, name)
	if !ok {
		return s
	}
	if len(s.names) == 1 {
		return StyleSet{}
	}
	out := make([]string, 0, len(s.names)-1)
	out = append(out, s.names[:i]...)
	out = append(out, s.names[i+1:]...)
	return StyleSet{names: out}
}

// Names returns the style names in sorted order.
func (s StyleSet) Names() []string {
	return slices.Clone(s.names)
}

func (s StyleSet) Len() int { return len(s.names) }

func (s StyleSet) IsEmpty() bool { return len(s.names) == 0 }

func (s StyleSet) Equal(o StyleSet) bool {
	return slices.Equal(s.names, o.names)
}

func (s StyleSet) String() string {
	return "{" + strings.Join(s.names, ",") + "}"
}
