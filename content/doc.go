// Package content implements the immutable rich-text document model for inkwell.
//
// A Content value is a snapshot: an ordered list of blocks, each holding
// grapheme clusters that may carry inline style names and a reference to an
// entity in the snapshot's entity table. Snapshots are never modified in place;
// every mutation is a package-level function returning a new snapshot.
//
// Offsets are 0-based grapheme cluster indexes within a block. Ranges are
// half-open: [Start, End).
package content
