// Package state holds the immutable editor state: the current content
// snapshot, the selection, and the undo/redo history.
//
// Every function returns a new *EditorState and leaves its input untouched.
// A host keeps exactly one current state and replaces it with the value a
// function returns.
package state
