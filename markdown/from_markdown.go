package markdown

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// Parser turns CommonMark text, with the GitHub tables, strikethrough and
// definition list extensions, into an article.
type Parser struct {
	factory *factory.Factory
	md      goldmark.Markdown
}

// NewParser returns a parser creating its units with f.
func NewParser(f *factory.Factory) *Parser {
	return &Parser{
		factory: f,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.DefinitionList),
		),
	}
}

// Parse parses src into an ARTICLE unit. The first level-one heading becomes
// the article title; every other heading opens a section of its level, so
// that the section tree follows the heading outline. Raw HTML blocks are
// sanitized and pasted.
func (p *Parser) Parse(src []byte) (*html.Node, error) {
	root := p.md.Parser().Parse(text.NewReader(src))
	art, err := p.factory.Create(article.ARTICLE, nil, nil)
	if err != nil {
		return nil, err
	}
	b := &builder{
		factory: p.factory,
		schema:  p.factory.Schema(),
		src:     src,
		stack:   []*html.Node{art},
	}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		if err := b.top(n); err != nil {
			return nil, err
		}
	}
	return art, nil
}

type builder struct {
	factory *factory.Factory
	schema  *model.Schema
	src     []byte
	// The article, then the open section of each depth.
	stack []*html.Node
	title bool
}

func (b *builder) top(n ast.Node) error {
	h, ok := n.(*ast.Heading)
	if !ok {
		return b.block(b.stack[len(b.stack)-1], n)
	}
	if h.Level == 1 && !b.title && len(b.stack) == 1 {
		nodes, err := b.inline(h)
		if err != nil {
			return err
		}
		h1, err := b.factory.Create(article.H1, nodes, nil)
		if err != nil {
			return err
		}
		b.title = true
		model.InsertBefore(b.stack[0], h1, b.stack[0].FirstChild)
		return nil
	}
	depth := min(max(h.Level-1, 1), len(article.Sections))
	for len(b.stack) > depth {
		b.stack = b.stack[:len(b.stack)-1]
	}
	for len(b.stack) < depth {
		if err := b.open(nil); err != nil {
			return err
		}
	}
	nodes, err := b.inline(h)
	if err != nil {
		return err
	}
	return b.open(nodes)
}

// open starts a section one level below the innermost open one.
func (b *builder) open(head []*html.Node) error {
	kind := article.Sections[len(b.stack)-1]
	content := any(nil)
	if head != nil {
		content = factory.Pair{Head: head}
	}
	s, err := b.factory.Create(kind, content, nil)
	if err != nil {
		return err
	}
	if err := b.append(b.stack[len(b.stack)-1], s); err != nil {
		return err
	}
	b.stack = append(b.stack, s)
	return nil
}

func (b *builder) append(parent *html.Node, nodes ...*html.Node) error {
	pk, err := b.schema.KindOf(parent)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		k, err := b.schema.KindOf(n)
		if err != nil {
			return err
		}
		if !b.schema.IsLegalChild(pk, k) {
			return &model.IllegalChildError{Parent: pk, Child: k}
		}
	}
	model.Append(parent, nodes...)
	return nil
}

func (b *builder) create(parent *html.Node, kind model.Kind, content any, opts factory.Options) error {
	n, err := b.factory.Create(kind, content, opts)
	if err != nil {
		return err
	}
	return b.append(parent, n)
}

func (b *builder) block(parent *html.Node, n ast.Node) error {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		nodes, err := b.inline(n)
		if err != nil {
			return err
		}
		return b.create(parent, article.P, nodes, nil)
	case *ast.Blockquote:
		bq, err := b.factory.Create(article.BLOCKQUOTE, nil, nil)
		if err != nil {
			return err
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if err := b.block(bq, c); err != nil {
				return err
			}
		}
		return b.append(parent, bq)
	case *ast.List:
		list, err := b.list(n)
		if err != nil {
			return err
		}
		return b.append(parent, list)
	case *ast.FencedCodeBlock:
		var opts factory.Options
		if lang := string(n.Language(b.src)); lang != "" {
			opts = factory.Options{"lang": lang}
		}
		return b.create(parent, article.CODEBLOCK, b.lines(n), opts)
	case *ast.CodeBlock:
		return b.create(parent, article.CODEBLOCK, b.lines(n), nil)
	case *ast.ThematicBreak:
		return b.create(parent, article.HR, nil, nil)
	case *ast.HTMLBlock:
		markup := b.lines(n)
		if n.HasClosure() {
			markup += string(n.ClosureLine.Value(b.src))
		}
		_, err := b.factory.FillFromHTML(parent, markup)
		return err
	case *extast.Table:
		return b.table(parent, n)
	case *extast.DefinitionList:
		return b.definitions(parent, n)
	}
	slog.Debug("Unsupported Markdown block", "kind", n.Kind().String())
	return nil
}

func (b *builder) list(n *ast.List) (*html.Node, error) {
	kind := article.UL
	var opts factory.Options
	if n.IsOrdered() {
		kind = article.OL
		if n.Start != 1 {
			opts = factory.Options{"start": strconv.Itoa(n.Start)}
		}
	}
	list, err := b.factory.Create(kind, nil, opts)
	if err != nil {
		return nil, err
	}
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		var content []*html.Node
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.List:
				sub, err := b.list(c)
				if err != nil {
					return nil, err
				}
				content = append(content, sub)
			case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
				nodes, err := b.inline(c)
				if err != nil {
					return nil, err
				}
				if len(content) > 0 {
					content = append(content, b.br())
				}
				content = append(content, nodes...)
			default:
				if t := b.lines(c); t != "" {
					content = append(content, model.NewText(t))
				}
			}
		}
		li, err := b.factory.Create(article.LI, content, nil)
		if err != nil {
			return nil, err
		}
		list.AppendChild(li)
	}
	return list, nil
}

func (b *builder) table(parent *html.Node, n *extast.Table) error {
	ts := factory.TableSpec{}
	for row := n.FirstChild(); row != nil; row = row.NextSibling() {
		if _, ok := row.(*extast.TableHeader); ok {
			ts.HeadRow = true
		}
		var cells []any
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			nodes, err := b.inline(cell)
			if err != nil {
				return err
			}
			cells = append(cells, nodes)
		}
		ts.Cells = append(ts.Cells, cells)
	}
	return b.create(parent, article.TABLE, ts, nil)
}

func (b *builder) definitions(parent *html.Node, n *extast.DefinitionList) error {
	dl, err := b.factory.Create(article.DL, nil, nil)
	if err != nil {
		return err
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var kind model.Kind
		var nodes []*html.Node
		switch c.(type) {
		case *extast.DefinitionTerm:
			kind = article.DT
			if nodes, err = b.inline(c); err != nil {
				return err
			}
		case *extast.DefinitionDescription:
			kind = article.DD
			for p := c.FirstChild(); p != nil; p = p.NextSibling() {
				sub, err := b.inline(p)
				if err != nil {
					return err
				}
				if len(nodes) > 0 {
					nodes = append(nodes, b.br())
				}
				nodes = append(nodes, sub...)
			}
		default:
			continue
		}
		if err := b.create(dl, kind, nodes, nil); err != nil {
			return err
		}
	}
	return b.append(parent, dl)
}

// inline converts the inline children of n. Formatting that cannot hold its
// content, such as a link inside emphasis, is dropped and the content kept.
func (b *builder) inline(n ast.Node) ([]*html.Node, error) {
	var res []*html.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var nodes []*html.Node
		var err error
		switch c := c.(type) {
		case *ast.Text:
			v := c.Segment.Value(b.src)
			if !c.IsRaw() {
				v = util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(v)))
			}
			nodes = append(nodes, model.NewText(string(v)))
			switch {
			case c.HardLineBreak():
				nodes = append(nodes, b.br())
			case c.SoftLineBreak():
				nodes = append(nodes, model.NewText(" "))
			}
		case *ast.String:
			nodes = append(nodes, model.NewText(string(c.Value)))
		case *ast.Emphasis:
			kind := article.EM
			if c.Level > 1 {
				kind = article.STRONG
			}
			nodes, err = b.wrap(c, kind, nil)
		case *extast.Strikethrough:
			nodes, err = b.wrap(c, article.DEL, nil)
		case *ast.CodeSpan:
			var code *html.Node
			if code, err = b.factory.Create(article.CODE, b.plain(c), nil); err == nil {
				nodes = append(nodes, code)
			}
		case *ast.Link:
			opts := factory.Options{"href": string(c.Destination)}
			if len(c.Title) > 0 {
				opts["title"] = string(c.Title)
			}
			nodes, err = b.wrap(c, article.A, opts)
		case *ast.AutoLink:
			var a *html.Node
			a, err = b.factory.Create(article.A, string(c.Label(b.src)), factory.Options{"href": string(c.URL(b.src))})
			if err == nil {
				nodes = append(nodes, a)
			}
		case *ast.Image:
			opts := factory.Options{"src": string(c.Destination), "alt": b.plain(c)}
			if len(c.Title) > 0 {
				opts["title"] = string(c.Title)
			}
			var img *html.Node
			if img, err = b.factory.Create(article.IMG, nil, opts); err == nil {
				nodes = append(nodes, img)
			}
		case *extast.TaskCheckBox:
			mark := "[ ] "
			if c.IsChecked {
				mark = "[x] "
			}
			nodes = append(nodes, model.NewText(mark))
		case *ast.RawHTML:
			slog.Debug("Inline HTML dropped")
		default:
			nodes, err = b.inline(c)
		}
		if err != nil {
			return nil, err
		}
		res = append(res, nodes...)
	}
	return res, nil
}

// wrap creates a formatting unit around the inline children of n, or
// returns the children alone when the unit cannot hold them.
func (b *builder) wrap(n ast.Node, kind model.Kind, opts factory.Options) ([]*html.Node, error) {
	children, err := b.inline(n)
	if err != nil {
		return nil, err
	}
	el, err := b.factory.Create(kind, children, opts)
	var illegal *model.IllegalChildError
	switch {
	case errors.As(err, &illegal):
		slog.Debug("Formatting dropped", "kind", kind, "err", err)
		return children, nil
	case err != nil:
		return nil, err
	}
	return []*html.Node{el}, nil
}

func (b *builder) br() *html.Node {
	br, _ := b.factory.Create(article.BR, nil, nil)
	return br
}

// plain returns the text of the inline children of n.
func (b *builder) plain(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(b.src))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// lines returns the raw lines of a block, without the final line break.
func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.src))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
