package content

import "maps"

// EntityKey is the opaque handle of an entity in a snapshot's entity table.
type EntityKey string

// NoEntity marks a character without an entity reference.
const NoEntity EntityKey = ""

// Mutability controls how ordinary text editing treats an entity's range.
type Mutability string

const (
	// Mutable entities extend to text typed inside their range.
	Mutable Mutability = "MUTABLE"
	// Immutable entities are removed whole when any part of them is deleted.
	Immutable Mutability = "IMMUTABLE"
	// Segmented entities are treated like mutable ones by this model.
	Segmented Mutability = "SEGMENTED"
)

// Entity is an annotation attached to character runs by reference.
type Entity struct {
	Type       string
	Mutability Mutability
	Data       map[string]any
}

func (e Entity) clone() Entity {
	e.Data = maps.Clone(e.Data)
	if e.Data == nil {
		e.Data = map[string]any{}
	}
	return e
}
