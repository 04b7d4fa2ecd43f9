package export

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/inkwell/content"
)

// LinkType is the entity type exported as an anchor. Its "url" data field
// becomes the href.
const LinkType = "LINK"

var policy = bluemonday.UGCPolicy()

var blockAtoms = map[string]atom.Atom{
	content.BlockUnstyled:          atom.P,
	content.BlockHeaderOne:         atom.H1,
	content.BlockHeaderTwo:         atom.H2,
	content.BlockHeaderThree:       atom.H3,
	content.BlockHeaderFour:        atom.H4,
	content.BlockHeaderFive:        atom.H5,
	content.BlockHeaderSix:         atom.H6,
	content.BlockBlockquote:        atom.Blockquote,
	content.BlockCodeBlock:         atom.Pre,
	content.BlockUnorderedListItem: atom.Li,
	content.BlockOrderedListItem:   atom.Li,
	content.BlockAtomic:            atom.Figure,
}

var styleAtoms = map[string]atom.Atom{
	content.StyleBold:          atom.Strong,
	content.StyleItalic:        atom.Em,
	content.StyleUnderline:     atom.U,
	content.StyleCode:          atom.Code,
	content.StyleStrikethrough: atom.S,
	content.StyleSuperscript:   atom.Sup,
	content.StyleSubscript:     atom.Sub,
}

// HTML renders c as a sanitized HTML fragment.
func HTML(c *content.Content) (string, error) {
	var buf bytes.Buffer
	for _, n := range Nodes(c) {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return policy.Sanitize(buf.String()), nil
}

// Nodes builds the unsanitized element tree of c, one node per top-level
// element. Consecutive list items of the same type share a list element.
func Nodes(c *content.Content) []*html.Node {
	var (
		out  []*html.Node
		list *html.Node
		kind string
	)
	for _, b := range c.Blocks() {
		el := element(blockAtom(b.Type()))
		appendInline(el, c, b)

		switch b.Type() {
		case content.BlockUnorderedListItem, content.BlockOrderedListItem:
			if list == nil || kind != b.Type() {
				a := atom.Ul
				if b.Type() == content.BlockOrderedListItem {
					a = atom.Ol
				}
				list, kind = element(a), b.Type()
				out = append(out, list)
			}
			list.AppendChild(el)
		default:
			list, kind = nil, ""
			out = append(out, el)
		}
	}
	return out
}

func blockAtom(typ string) atom.Atom {
	if a, ok := blockAtoms[typ]; ok {
		return a
	}
	return atom.P
}

// appendInline adds b's characters to parent as runs of equal entity, then
// equal style.
func appendInline(parent *html.Node, c *content.Content, b *content.Block) {
	chars := b.Characters()
	for start := 0; start < len(chars); {
		end := start + 1
		for end < len(chars) && chars[end].Entity == chars[start].Entity {
			end++
		}
		target := parent
		if href, ok := linkHref(c, chars[start].Entity); ok {
			a := element(atom.A)
			a.Attr = []html.Attribute{{Key: "href", Val: href}}
			parent.AppendChild(a)
			target = a
		}
		appendStyled(target, chars[start:end])
		start = end
	}
}

func appendStyled(parent *html.Node, chars []content.Character) {
	for start := 0; start < len(chars); {
		end := start + 1
		for end < len(chars) && chars[end].Style.Equal(chars[start].Style) {
			end++
		}
		var text []byte
		for _, ch := range chars[start:end] {
			text = append(text, ch.Cluster...)
		}
		n := &html.Node{Type: html.TextNode, Data: string(text)}
		names := chars[start].Style.Names()
		for i := len(names) - 1; i >= 0; i-- {
			a, ok := styleAtoms[names[i]]
			if !ok {
				continue
			}
			wrap := element(a)
			wrap.AppendChild(n)
			n = wrap
		}
		parent.AppendChild(n)
		start = end
	}
}

func linkHref(c *content.Content, key content.EntityKey) (string, bool) {
	if key == content.NoEntity {
		return "", false
	}
	e, ok := c.Entity(key)
	if !ok || e.Type != LinkType {
		return "", false
	}
	url, ok := e.Data["url"].(string)
	return url, ok && url != ""
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
