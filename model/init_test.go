package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	. "github.com/shodgson/article-go/model"
)

var testKinds = []*KindSpec{
	{Key: "TEXT", Tag: TextTag, Group: "inline"},
	{Key: "DOC", Tag: "div", Role: true, Flags: Blocks | Struct | Fixed, Content: "HEADING block"},
	{Key: "HEADING", Tag: "h1", Flags: Blocks | Content, Content: "TEXT"},
	{Key: "P", Tag: "p", Default: true, Role: true, Flags: Blocks | Content, Content: "TEXT inline", Group: "block"},
	{Key: "NOTE", Tag: "p", Role: true, Flags: Blocks | Content, Content: "TEXT inline", Group: "block"},
	{Key: "QUOTE", Tag: "blockquote", Flags: Blocks | Struct, Content: "P block", Group: "block"},
	{Key: "UL", Tag: "ul", Flags: Blocks | Struct, Content: "LI", Group: "block", Item: "LI"},
	{Key: "LI", Tag: "li", Flags: StructX | Content, Content: "TEXT inline UL"},
	{Key: "HR", Tag: "hr", Flags: Blocks | Empty | Special, Group: "block"},
	{Key: "EM", Tag: "em", Flags: Inlines | Content, Content: "TEXT inline", Group: "inline"},
	{Key: "IMG", Tag: "img", Flags: Inlines | Empty, Group: "inline"},
}

var schema = mustSchema(&SchemaSpec{Kinds: testKinds})

func mustSchema(spec *SchemaSpec) *Schema {
	s, err := NewSchema(spec)
	if err != nil {
		panic(err)
	}
	return s
}

// parse parses markup in a body context and returns its first node.
func parse(t *testing.T, markup string) *html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return nodes[0]
}
