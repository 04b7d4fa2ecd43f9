package export

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"

	"github.com/iw2rmb/inkwell/content"
)

var mdConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		strikethrough.NewStrikethroughPlugin(),
	),
)

// Markdown renders c as CommonMark. Styles without a Markdown form
// (underline, superscript, subscript) are exported as plain text.
func Markdown(c *content.Content) (string, error) {
	h, err := HTML(c)
	if err != nil {
		return "", err
	}
	md, err := mdConverter.ConvertString(h)
	if err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
