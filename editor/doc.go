// Package editor provides a Bubble Tea rich-text editor component backed by
// the richtext package.
//
// The package is responsible for input handling, viewport behavior,
// grapheme-aware rendering of inline styles, block types and links, and host
// integration hooks (clipboard and change events). All document changes go
// through a richtext.Container, so hosts may drive the same store directly.
package editor
