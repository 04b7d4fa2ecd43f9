package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/inkwell/content"
)

func sample(t *testing.T) *content.Content {
	t.Helper()
	c := content.FromBlocks(
		content.NewBlock("t", content.BlockHeaderOne, "Title"),
		content.NewBlock("p", "", "bold and site"),
		content.NewBlock("u1", content.BlockUnorderedListItem, "one"),
		content.NewBlock("u2", content.BlockUnorderedListItem, "two"),
		content.NewBlock("o1", content.BlockOrderedListItem, "first"),
	)
	c = content.ApplyInlineStyle(c, c.Select("p", 0, "p", 4), content.StyleBold)
	c, key := c.CreateEntity(LinkType, content.Mutable, map[string]any{"url": "https://x.io"})
	c = content.ApplyEntity(c, c.Select("p", 9, "p", 13), key)
	return c
}

func TestHTML(t *testing.T) {
	got, err := HTML(sample(t))
	require.NoError(t, err)

	assert.Contains(t, got, "<h1>Title</h1>")
	assert.Contains(t, got, "<strong>bold</strong> and ")
	assert.Contains(t, got, `href="https://x.io"`)
	assert.Contains(t, got, ">site</a>")
	assert.Contains(t, got, "<ul><li>one</li><li>two</li></ul>")
	assert.Contains(t, got, "<ol><li>first</li></ol>")
}

func TestHTML_NestedStylesAndEscaping(t *testing.T) {
	c := content.FromBlocks(content.NewBlock("a", "", "x<y"))
	sel := c.Select("a", 0, "a", 3)
	c = content.ApplyInlineStyle(c, sel, content.StyleItalic)
	c = content.ApplyInlineStyle(c, sel, content.StyleBold)

	got, err := HTML(c)
	require.NoError(t, err)
	assert.Equal(t, "<p><strong><em>x&lt;y</em></strong></p>", got)
}

func TestHTML_DropsUnsafeLinks(t *testing.T) {
	c := content.FromBlocks(content.NewBlock("a", "", "click"))
	c, key := c.CreateEntity(LinkType, content.Mutable, map[string]any{"url": "javascript:alert(1)"})
	c = content.ApplyEntity(c, c.Select("a", 0, "a", 5), key)

	got, err := HTML(c)
	require.NoError(t, err)
	assert.NotContains(t, got, "javascript")
	assert.Contains(t, got, "click")
}

func TestHTML_IgnoresOtherEntities(t *testing.T) {
	c := content.FromBlocks(content.NewBlock("a", "", "@bob"))
	c, key := c.CreateEntity("MENTION", content.Immutable, map[string]any{"url": "https://x.io"})
	c = content.ApplyEntity(c, c.Select("a", 0, "a", 4), key)

	got, err := HTML(c)
	require.NoError(t, err)
	assert.Equal(t, "<p>@bob</p>", got)
}

func TestNodes_SplitsListsByType(t *testing.T) {
	c := content.FromBlocks(
		content.NewBlock("a", content.BlockUnorderedListItem, "a"),
		content.NewBlock("b", content.BlockOrderedListItem, "b"),
		content.NewBlock("c", content.BlockUnorderedListItem, "c"),
	)
	nodes := Nodes(c)
	require.Len(t, nodes, 3)
	assert.Equal(t, "ul", nodes[0].Data)
	assert.Equal(t, "ol", nodes[1].Data)
	assert.Equal(t, "ul", nodes[2].Data)
}

func TestMarkdown(t *testing.T) {
	got, err := Markdown(sample(t))
	require.NoError(t, err)

	assert.Contains(t, got, "# Title")
	assert.Contains(t, got, "**bold** and [site](https://x.io)")
	assert.Contains(t, got, "- one\n- two")
	assert.Contains(t, got, "1. first")
}
