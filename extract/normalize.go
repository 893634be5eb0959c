package extract

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/text/unicode/norm"

	"github.com/shodgson/article-go/model"
)

// Normalize is the text cleanup applied to extracted text: NFC composition,
// whitespace runs collapsed to one space, no leading or trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

func collapse(s string) string {
	var b strings.Builder
	space := false
	for _, r := range norm.NFC.String(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// normalizeInline applies Normalize to inline content spread over several
// text nodes, as if it were one string. Emptied text nodes are dropped.
func normalizeInline(nodes []*html.Node) []*html.Node {
	var texts []*html.Node
	for _, n := range nodes {
		model.Walk(n, func(c *html.Node) bool {
			switch {
			case c.Type == html.TextNode:
				texts = append(texts, c)
			case c.DataAtom == atom.Br:
				// A line break ends the preceding whitespace run.
				texts = append(texts, nil)
			}
			return true
		})
	}
	lead := true
	for _, t := range texts {
		if t == nil {
			lead = true
			continue
		}
		s := collapse(t.Data)
		if lead {
			s = strings.TrimLeft(s, " ")
		}
		t.Data = s
		if s != "" {
			lead = strings.HasSuffix(s, " ")
		}
	}
	for i := len(texts) - 1; i >= 0; i-- {
		if texts[i] == nil {
			continue
		}
		texts[i].Data = strings.TrimRight(texts[i].Data, " ")
		if texts[i].Data != "" {
			break
		}
	}
	var out []*html.Node
	for _, n := range nodes {
		if n.Type == html.TextNode && n.Data == "" {
			continue
		}
		out = append(out, n)
	}
	for _, t := range texts {
		if t != nil && t.Data == "" && t.Parent != nil {
			t.Parent.RemoveChild(t)
		}
	}
	return out
}
