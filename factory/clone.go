package factory

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
)

// Clone deep-clones a unit and carries the kind of every source node over to
// its copy. Source and copy descendants are paired index by index; a length
// mismatch is a programming error and panics.
func (f *Factory) Clone(src *html.Node) *html.Node {
	dst := cloneTree(src)
	from := append([]*html.Node{src}, model.Descendants(src)...)
	to := append([]*html.Node{dst}, model.Descendants(dst)...)
	if len(from) != len(to) {
		panic(fmt.Sprintf("clone of <%s> has %d nodes, source has %d", src.Data, len(to), len(from)))
	}
	for i, n := range from {
		if n.Type != html.ElementNode {
			continue
		}
		k, err := f.schema.KindOf(n)
		if err != nil {
			continue
		}
		if err := f.schema.Tag(to[i], k); err != nil {
			panic(err)
		}
	}
	return dst
}

// CloneAll clones every node of a list.
func (f *Factory) CloneAll(nodes []*html.Node) []*html.Node {
	res := make([]*html.Node, len(nodes))
	for i, n := range nodes {
		res[i] = f.Clone(n)
	}
	return res
}

func cloneTree(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneTree(child))
	}
	return c
}
