// Package export renders content snapshots as HTML and Markdown.
//
// Blocks map to block elements, inline styles to phrase elements and LINK
// entities to anchors. Output is sanitized, so link URLs with unsafe schemes
// are dropped.
package export
