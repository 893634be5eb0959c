package model

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node.
func NewElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tag)),
		Data:     tag,
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Attr returns the value of an attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the attribute is present.
func HasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

// SetAttr sets an attribute, keeping its position when already present.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr removes an attribute if present.
func RemoveAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			kept = append(kept, a)
		}
	}
	n.Attr = kept
}

// Style returns one CSS property of the style attribute.
func Style(n *html.Node, prop string) string {
	for _, d := range parseStyles(Attr(n, "style")) {
		if d.Key == prop {
			return d.Val
		}
	}
	return ""
}

// SetStyle sets one CSS property of the style attribute. An empty value
// removes the property, and the attribute when nothing is left.
func SetStyle(n *html.Node, prop, val string) {
	decls := parseStyles(Attr(n, "style"))
	found := false
	kept := decls[:0]
	for _, d := range decls {
		if d.Key == prop {
			found = true
			if val == "" {
				continue
			}
			d.Val = val
		}
		kept = append(kept, d)
	}
	if !found && val != "" {
		kept = append(kept, html.Attribute{Key: prop, Val: val})
	}
	if len(kept) == 0 {
		RemoveAttr(n, "style")
		return
	}
	parts := make([]string, len(kept))
	for i, d := range kept {
		parts[i] = d.Key + ": " + d.Val
	}
	SetAttr(n, "style", strings.Join(parts, "; "))
}

func parseStyles(raw string) []html.Attribute {
	var res []html.Attribute
	for _, styleRaw := range strings.Split(raw, ";") {
		arr := strings.SplitN(styleRaw, ":", 2)
		if len(arr) < 2 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(arr[0]))
		if key == "" {
			continue
		}
		res = append(res, html.Attribute{Key: key, Val: strings.TrimSpace(arr[1])})
	}
	return res
}

// Children returns the child nodes of n.
func Children(n *html.Node) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, c)
	}
	return res
}

// Elements returns the element children of n.
func Elements(n *html.Node) []*html.Node {
	var res []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			res = append(res, c)
		}
	}
	return res
}

// FirstElement returns the first element child of n, or nil.
func FirstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants in document order. When f returns false
// the children of the visited node are skipped.
func Walk(n *html.Node, f func(*html.Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, f)
		c = next
	}
}

// Descendants returns the flattened list of the descendants of n in
// document order, n excluded.
func Descendants(n *html.Node) []*html.Node {
	var res []*html.Node
	Walk(n, func(c *html.Node) bool {
		if c != n {
			res = append(res, c)
		}
		return true
	})
	return res
}

// TextContent concatenates the text nodes under n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	Walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Append detaches each node and appends it to parent.
func Append(parent *html.Node, nodes ...*html.Node) {
	for _, c := range nodes {
		if c == nil {
			continue
		}
		Detach(c)
		parent.AppendChild(c)
	}
}

// InsertBefore detaches n and inserts it before ref, or appends it when ref
// is nil.
func InsertBefore(parent, n, ref *html.Node) {
	Detach(n)
	parent.InsertBefore(n, ref)
}

// ReplaceChildren removes every child of parent and appends nodes.
func ReplaceChildren(parent *html.Node, nodes ...*html.Node) {
	for c := parent.FirstChild; c != nil; c = parent.FirstChild {
		parent.RemoveChild(c)
	}
	Append(parent, nodes...)
}

// Replace puts n in the place of old. old ends up detached.
func Replace(old, n *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	InsertBefore(parent, n, old)
	parent.RemoveChild(old)
}

// Render serializes n to HTML.
func Render(n *html.Node) string {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// RenderChildren serializes the children of n to HTML.
func RenderChildren(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}
