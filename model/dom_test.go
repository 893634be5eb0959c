package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	. "github.com/shodgson/article-go/model"
)

func TestAttributes(t *testing.T) {
	n := NewElement("P")
	assert.Equal(t, "p", n.Data)
	assert.Equal(t, atom.P, n.DataAtom)

	assert.False(t, HasAttr(n, "id"))
	SetAttr(n, "id", "a")
	SetAttr(n, "class", "x")
	SetAttr(n, "id", "b")
	assert.Equal(t, "b", Attr(n, "id"))
	assert.Equal(t, `<p id="b" class="x"></p>`, Render(n))

	RemoveAttr(n, "id")
	assert.False(t, HasAttr(n, "id"))
	assert.Equal(t, "", Attr(n, "id"))
	assert.Equal(t, `<p class="x"></p>`, Render(n))
}

func TestStyles(t *testing.T) {
	n := parse(t, `<p style="color: red;TEXT-ALIGN:left">x</p>`)
	assert.Equal(t, "red", Style(n, "color"))
	assert.Equal(t, "left", Style(n, "text-align"))
	assert.Equal(t, "", Style(n, "width"))

	SetStyle(n, "color", "blue")
	SetStyle(n, "width", "10px")
	assert.Equal(t, "color: blue; text-align: left; width: 10px", Attr(n, "style"))

	SetStyle(n, "color", "")
	SetStyle(n, "text-align", "")
	SetStyle(n, "width", "")
	assert.False(t, HasAttr(n, "style"))
}

func TestTreeHelpers(t *testing.T) {
	n := parse(t, `<ul><li>one</li> <li>two <em>three</em></li></ul>`)
	assert.Len(t, Children(n), 3)
	require.Len(t, Elements(n), 2)
	assert.Equal(t, "li", FirstElement(n).Data)
	assert.Len(t, Descendants(n), 7)
	assert.Equal(t, "one two three", TextContent(n))

	first, second := Elements(n)[0], Elements(n)[1]
	InsertBefore(n, second, first)
	assert.Equal(t, second, FirstElement(n))

	Detach(first)
	assert.Nil(t, first.Parent)
	assert.Len(t, Elements(n), 1)

	p := NewElement("p")
	Replace(second, p)
	assert.Nil(t, second.Parent)
	assert.Equal(t, p, FirstElement(n))

	ReplaceChildren(n, first, second)
	assert.Equal(t, "<li>one</li><li>two <em>three</em></li>", RenderChildren(n))

	// Walk skips the children of nodes it is told to skip
	var seen []string
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.ElementNode {
			seen = append(seen, c.Data)
		}
		return c.Data != "li"
	})
	assert.Equal(t, []string{"ul", "li", "li"}, seen)
}
