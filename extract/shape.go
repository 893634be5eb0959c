package extract

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// A row is one line of extracted content. Ordinary lines have one cell;
// table rows have one per column.
type row [][]*html.Node

// flat joins the cells of a row into one inline sequence.
func (r row) flat() []*html.Node {
	var out []*html.Node
	for i, cell := range r {
		if i > 0 && len(cell) > 0 && len(out) > 0 {
			out = append(out, model.NewText(" "))
		}
		out = append(out, cell...)
	}
	return out
}

// shape is the target-independent reading of a source unit: an optional
// heading, the content rows, and for containers the source body blocks.
// Every node it holds is a detached copy, except blocks.
type shape struct {
	head   []*html.Node
	rows   []row
	blocks []*html.Node
	code   bool
	table  *html.Node
}

// lines returns the rows, the heading first when there is one.
func (s *shape) lines() []row {
	if s.head == nil {
		return s.rows
	}
	return append([]row{{s.head}}, s.rows...)
}

func (x *Extractor) gather(n *html.Node) *shape {
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) == "" {
			return &shape{}
		}
		return &shape{rows: []row{{{model.NewText(n.Data)}}}}
	}
	k, err := x.schema.KindOf(n)
	if err != nil {
		return nil
	}
	spec, _ := x.schema.Spec(k)
	switch {
	case spec.Atomic || spec.Flags.Has(model.Special):
		return nil
	case spec.SelfExtract:
		return &shape{rows: []row{{{x.factory.Clone(n)}}}}
	case spec.Compat == article.CompatCode:
		return x.gatherCode(n, k)
	case spec.Compat == article.CompatTable || slices.Contains(tableParts, k):
		return x.gatherTable(n)
	case spec.Flags.Has(model.Content):
		return x.gatherLine(n)
	case spec.Compat == article.CompatList:
		s := &shape{}
		for _, c := range model.Children(n) {
			if sub := x.gather(c); sub != nil {
				s.rows = append(s.rows, sub.lines()...)
			}
		}
		return s
	case spec.Flags.Has(model.Empty):
		return nil
	}
	return x.gatherContainer(n, spec)
}

var tableParts = []model.Kind{article.THEAD, article.TBODY, article.TFOOT, article.TR}

// gatherLine reads a content unit: its inline children form one line, nested
// block units (sublists) add lines after it.
func (x *Extractor) gatherLine(n *html.Node) *shape {
	s := &shape{}
	var inline []*html.Node
	var nested []row
	for _, c := range model.Children(n) {
		if c.Type == html.ElementNode {
			if k, err := x.schema.KindOf(c); err == nil {
				if ks, _ := x.schema.Spec(k); ks.Flags.Has(model.Blocks) {
					if sub := x.gather(c); sub != nil {
						nested = append(nested, sub.lines()...)
					}
					continue
				}
			}
		}
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			inline = append(inline, x.copy(c))
		}
	}
	s.rows = append([]row{{inline}}, nested...)
	return s
}

// gatherContainer reads a block container: the heading, then the lines of
// every body block.
func (x *Extractor) gatherContainer(n *html.Node, spec *model.KindSpec) *shape {
	s := &shape{}
	children := model.Elements(n)
	if len(children) > 0 && spec.Head != "" && x.schema.Is(children[0], spec.Head) {
		s.head = x.copyChildren(children[0])
		children = children[1:]
	}
	for _, c := range children {
		s.blocks = append(s.blocks, c)
		if sub := x.gather(c); sub != nil {
			s.rows = append(s.rows, sub.lines()...)
		}
	}
	if s.blocks == nil {
		s.blocks = []*html.Node{}
	}
	return s
}

func (x *Extractor) gatherTable(n *html.Node) *shape {
	s := &shape{table: n}
	var trs []*html.Node
	if n.DataAtom == atom.Tr {
		trs = []*html.Node{n}
	} else if n.DataAtom == atom.Table {
		info, err := x.schema.Table(n)
		if err != nil {
			return nil
		}
		if info.Caption != nil {
			s.head = x.copyChildren(info.Caption)
		}
		trs = info.AllRows()
	} else {
		for _, c := range model.Elements(n) {
			if c.DataAtom == atom.Tr {
				trs = append(trs, c)
			}
		}
	}
	for _, tr := range trs {
		var r row
		for _, cell := range model.Elements(tr) {
			r = append(r, x.copyChildren(cell))
		}
		s.rows = append(s.rows, r)
	}
	return s
}

// gatherCode reads the innermost code contents, one row per source line.
func (x *Extractor) gatherCode(n *html.Node, k model.Kind) *shape {
	s := &shape{code: true}
	if k == article.CODELIST {
		for _, li := range model.Elements(n) {
			for _, line := range x.splitLines(x.codeContents(li)) {
				s.rows = append(s.rows, row{line})
			}
		}
		return s
	}
	for _, line := range x.splitLines(x.codeContents(n)) {
		s.rows = append(s.rows, row{line})
	}
	return s
}

// codeContents descends through code containers to the innermost one and
// copies its contents, never the code element itself.
func (x *Extractor) codeContents(n *html.Node) []*html.Node {
	for n.DataAtom != atom.Code {
		first := model.FirstElement(n)
		if first == nil || !x.isCodeUnit(first) {
			break
		}
		n = first
	}
	return x.copyChildren(n)
}

func (x *Extractor) isCodeUnit(n *html.Node) bool {
	k, err := x.schema.KindOf(n)
	return err == nil && x.schema.CompatibilityGroup(k) == article.CompatCode
}

// splitLines splits inline content at newlines. Elements spanning several
// lines are split into one copy per line.
func (x *Extractor) splitLines(nodes []*html.Node) [][]*html.Node {
	lines := [][]*html.Node{nil}
	for _, n := range nodes {
		segs := x.segments(n)
		lines[len(lines)-1] = append(lines[len(lines)-1], segs[0]...)
		for _, seg := range segs[1:] {
			lines = append(lines, seg)
		}
	}
	if len(lines) > 1 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func (x *Extractor) segments(n *html.Node) [][]*html.Node {
	switch n.Type {
	case html.TextNode:
		parts := strings.Split(n.Data, "\n")
		segs := make([][]*html.Node, len(parts))
		for i, p := range parts {
			if p != "" {
				segs[i] = []*html.Node{model.NewText(p)}
			}
		}
		return segs
	case html.ElementNode:
		sub := x.splitLines(model.Children(n))
		segs := make([][]*html.Node, len(sub))
		for i, line := range sub {
			el := x.shallow(n)
			model.Append(el, line...)
			segs[i] = []*html.Node{el}
		}
		return segs
	}
	return [][]*html.Node{nil}
}

// shallow copies an element without its children, keeping its kind.
func (x *Extractor) shallow(n *html.Node) *html.Node {
	c := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	if k, err := x.schema.KindOf(n); err == nil {
		_ = x.schema.Tag(c, k)
	}
	return c
}

func (x *Extractor) copy(n *html.Node) *html.Node {
	if n.Type == html.TextNode {
		return model.NewText(n.Data)
	}
	return x.factory.Clone(n)
}

func (x *Extractor) copyChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for _, c := range model.Children(n) {
		if c.Type == html.ElementNode || c.Type == html.TextNode {
			out = append(out, x.copy(c))
		}
	}
	return out
}
