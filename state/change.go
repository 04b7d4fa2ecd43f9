package state

// ChangeType labels a pushed snapshot for history grouping.
type ChangeType string

const (
	ChangeApplyEntity        ChangeType = "apply-entity"
	ChangeInsertCharacters   ChangeType = "insert-characters"
	ChangeInlineStyle        ChangeType = "change-inline-style"
	ChangeBlockType          ChangeType = "change-block-type"
	ChangeRemoveRange        ChangeType = "remove-range"
	ChangeSplitBlock         ChangeType = "split-block"
	ChangeInsertFragment     ChangeType = "insert-fragment"
	ChangeBackspaceCharacter ChangeType = "backspace-character"
	ChangeDeleteCharacter    ChangeType = "delete-character"
	ChangeUndo               ChangeType = "undo"
	ChangeRedo               ChangeType = "redo"
)

// coalesces reports whether consecutive changes of this type share one undo
// step.
func (t ChangeType) coalesces() bool {
	switch t {
	case ChangeInsertCharacters, ChangeBackspaceCharacter, ChangeDeleteCharacter:
		return true
	default:
		return false
	}
}

// keepsStyleOverride reports whether a pending inline style survives the change.
func (t ChangeType) keepsStyleOverride() bool {
	return t == ChangeBlockType || t == ChangeSplitBlock
}
