package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/inkwell/content"
)

// Style controls the editor's rendering.
//
// A zero Style renders plain text.
type Style struct {
	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style
	Link      lipgloss.Style

	// Inline is layered per style name over the characters carrying it.
	Inline map[string]lipgloss.Style
	// Blocks is applied to the text of blocks of a type.
	Blocks map[string]lipgloss.Style
	// Marker renders block prefixes such as list bullets and heading marks.
	Marker lipgloss.Style

	Status lipgloss.Style
}

func DefaultStyle() Style {
	marker := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Text:      lipgloss.NewStyle(),
		Selection: lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:    lipgloss.NewStyle().Reverse(true),
		Link:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("39")),
		Inline: map[string]lipgloss.Style{
			content.StyleBold:          lipgloss.NewStyle().Bold(true),
			content.StyleItalic:        lipgloss.NewStyle().Italic(true),
			content.StyleUnderline:     lipgloss.NewStyle().Underline(true),
			content.StyleCode:          lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Background(lipgloss.Color("235")),
			content.StyleStrikethrough: lipgloss.NewStyle().Strikethrough(true),
			content.StyleSuperscript:   lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
			content.StyleSubscript:     lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		},
		Blocks: map[string]lipgloss.Style{
			content.BlockHeaderOne:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			content.BlockHeaderTwo:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("177")),
			content.BlockHeaderThree: lipgloss.NewStyle().Bold(true),
			content.BlockBlockquote:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
			content.BlockCodeBlock:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		Marker: marker,
		Status: marker,
	}
}
