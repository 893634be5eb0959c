package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// toLine gives content targets one inline sequence. Lines are separated by a
// line break where the target takes one, by a space otherwise.
func toLine(x *Extractor, target *model.KindSpec, s *shape) *Data {
	var out []*html.Node
	for _, r := range s.lines() {
		nodes := x.inline(target.Key, r.flat(), s.code)
		if len(nodes) == 0 {
			continue
		}
		if len(out) > 0 {
			if x.schema.IsLegalChild(target.Key, article.BR) {
				out = append(out, x.create(article.BR, nil))
			} else {
				out = append(out, model.NewText(" "))
			}
		}
		out = append(out, nodes...)
	}
	return &Data{Nodes: out}
}

// toList gives list targets one item per line. Definition lists get every
// line as a description and no term.
func toList(x *Extractor, target *model.KindSpec, s *shape) *Data {
	items := x.items(target.Item, s.lines(), s.code)
	if target.Head != "" {
		return &Data{Paired: true, Body: items}
	}
	return &Data{Nodes: items}
}

func (x *Extractor) items(item model.Kind, lines []row, code bool) []*html.Node {
	var items []*html.Node
	for _, r := range lines {
		if item == article.CASCADELI {
			head := x.inline(article.CASCADEH, r.flat(), code)
			items = append(items, x.create(item, factory.Pair{Head: x.create(article.CASCADEH, head)}))
			continue
		}
		items = append(items, x.create(item, x.inline(item, r.flat(), code)))
	}
	return items
}

// toBlock gives block containers their heading and a body. Body blocks of a
// container source that are legal in the target are kept as copies; any
// other content becomes one item (paragraph) per line.
func toBlock(x *Extractor, target *model.KindSpec, s *shape) *Data {
	var head *html.Node
	lines := s.rows
	switch {
	case target.Head != "" && s.head != nil:
		head = x.create(target.Head, x.inline(target.Head, s.head, false))
	case s.head != nil:
		lines = s.lines()
	}
	var body []*html.Node
	switch {
	case s.blocks != nil:
		if head == nil && s.head != nil {
			body = append(body, x.items(target.Item, []row{{s.head}}, false)...)
		}
		for _, b := range s.blocks {
			body = append(body, x.block(target, b)...)
		}
	case s.code && x.schema.IsLegalChild(target.Key, article.CODEBLOCK):
		body = []*html.Node{x.create(article.CODEBLOCK, joinLines(flatRows(lines)))}
	case s.table != nil && x.schema.IsLegalChild(target.Key, article.TABLE):
		body = []*html.Node{x.factory.Clone(s.table)}
	default:
		body = x.items(target.Item, lines, s.code)
	}
	if target.Head != "" {
		return &Data{Paired: true, Head: head, Body: body}
	}
	return &Data{Nodes: body}
}

func (x *Extractor) block(target *model.KindSpec, b *html.Node) []*html.Node {
	k, err := x.schema.KindOf(b)
	if err != nil {
		return nil
	}
	if x.schema.IsLegalChild(target.Key, k) {
		return []*html.Node{x.factory.Clone(b)}
	}
	sub := x.gather(b)
	if sub == nil {
		return nil
	}
	return x.items(target.Item, sub.lines(), sub.code)
}

// toNode gives a cascading list node its heading, from the source heading or
// first line, and the remaining lines as a nested cascade.
func toNode(x *Extractor, target *model.KindSpec, s *shape) *Data {
	lines := s.lines()
	if len(lines) == 0 {
		return &Data{Paired: true}
	}
	head := x.create(target.Head, x.inline(target.Head, lines[0].flat(), s.code))
	d := &Data{Paired: true, Head: head}
	if rest := lines[1:]; len(rest) > 0 {
		d.Body = []*html.Node{x.create(article.CASCADE, x.items(article.CASCADELI, rest, s.code))}
	}
	return d
}

// toCode gives code targets the code text: the source code contents for
// code sources, the normalized text of each line otherwise. Line breaks
// start a new code line.
func toCode(x *Extractor, target *model.KindSpec, s *shape) *Data {
	var lines [][]*html.Node
	for _, r := range s.lines() {
		if s.code {
			lines = append(lines, x.fit(article.CODE, r.flat()))
			continue
		}
		for _, part := range splitBreaks(r.flat()) {
			lines = append(lines, []*html.Node{model.NewText(Normalize(nodesText(part)))})
		}
	}
	if target.Key == article.CODELIST {
		var items []*html.Node
		for _, line := range lines {
			items = append(items, x.create(article.CODELI, line))
		}
		return &Data{Nodes: items}
	}
	return &Data{Nodes: joinLines(lines)}
}

// toTable gives tables their caption and row groups. Table sources keep
// their row groups; any other source makes one row per line, with one cell
// per source cell.
func toTable(x *Extractor, target *model.KindSpec, s *shape) *Data {
	d := &Data{Paired: true}
	if s.head != nil {
		d.Head = x.create(target.Head, x.inline(target.Head, s.head, false))
	}
	if s.table != nil && s.table.Type == html.ElementNode && x.schema.Is(s.table, article.TABLE) {
		for _, c := range model.Elements(s.table) {
			if !x.schema.Is(c, article.CAPTION) {
				d.Body = append(d.Body, x.factory.Clone(c))
			}
		}
		return d
	}
	if rows := x.tableRows(s, false); len(rows) > 0 {
		d.Body = []*html.Node{x.create(article.TBODY, rows)}
	}
	return d
}

// tableRows makes one row per content row of the shape, padded to the widest
// row. The heading of a non-table source is not a row.
func (x *Extractor) tableRows(s *shape, header bool) []*html.Node {
	cellKind := article.TD
	if header {
		cellKind = article.TH
	}
	cols := 0
	for _, r := range s.rows {
		cols = max(cols, len(r))
	}
	var rows []*html.Node
	for _, r := range s.rows {
		var cells []*html.Node
		for i := 0; i < cols; i++ {
			var content []*html.Node
			if i < len(r) {
				content = x.inline(cellKind, r[i], s.code)
			}
			cells = append(cells, x.create(cellKind, content))
		}
		rows = append(rows, x.create(article.TR, cells))
	}
	return rows
}

func (x *Extractor) cells(target *model.KindSpec, s *shape) []*html.Node {
	var cells []*html.Node
	for _, r := range s.lines() {
		for _, cell := range r {
			cells = append(cells, x.create(target.Item, x.inline(target.Item, cell, s.code)))
		}
	}
	return cells
}

// inline fits inline content to a kind and normalizes it. Code is never
// normalized.
func (x *Extractor) inline(kind model.Kind, nodes []*html.Node, code bool) []*html.Node {
	nodes = x.fit(kind, nodes)
	if code {
		return nodes
	}
	return normalizeInline(nodes)
}

// fit keeps the nodes legal in kind and unwraps the others into their own
// fitted children. Text illegal in kind is dropped.
func (x *Extractor) fit(kind model.Kind, nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		k, err := x.schema.KindOf(n)
		if err == nil && x.schema.IsLegalChild(kind, k) {
			out = append(out, n)
			continue
		}
		if n.Type != html.ElementNode {
			continue
		}
		children := model.Children(n)
		for _, c := range children {
			n.RemoveChild(c)
		}
		out = append(out, x.fit(kind, children)...)
	}
	return out
}

// text returns the plain text of a shape, one line per row.
func (x *Extractor) text(s *shape) string {
	var lines []string
	for _, r := range s.lines() {
		lines = append(lines, nodesText(r.flat()))
	}
	if s.code {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines, " ")
}

// nodesText returns the text of nodes. Line breaks read as newlines.
func nodesText(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		model.Walk(n, func(c *html.Node) bool {
			switch {
			case c.Type == html.TextNode:
				b.WriteString(c.Data)
			case c.DataAtom == atom.Br:
				b.WriteByte('\n')
			}
			return true
		})
	}
	return b.String()
}

// splitBreaks splits an inline sequence at its top-level line breaks.
func splitBreaks(nodes []*html.Node) [][]*html.Node {
	parts := [][]*html.Node{nil}
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Br {
			parts = append(parts, nil)
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], n)
	}
	return parts
}

func flatRows(rows []row) [][]*html.Node {
	out := make([][]*html.Node, len(rows))
	for i, r := range rows {
		out[i] = r.flat()
	}
	return out
}

func joinLines(lines [][]*html.Node) []*html.Node {
	var out []*html.Node
	for i, line := range lines {
		if i > 0 {
			out = append(out, model.NewText("\n"))
		}
		out = append(out, line...)
	}
	return out
}
