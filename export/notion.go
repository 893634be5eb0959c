package export

import (
	"log/slog"
	"strings"

	"github.com/dstotijn/go-notion"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// ToNotionBlock serializes a unit to the Notion blocks standing for it.
type ToNotionBlock = func(s *NotionSerializer, n *html.Node) []notion.Block

// NotionSerializer turns article units into the blocks of a Notion page.
// Units with no serializer are skipped.
type NotionSerializer struct {
	Schema *model.Schema

	// The unit serialization functions.
	Nodes map[model.Kind]ToNotionBlock

	// The annotations inline kinds add to their text.
	Marks map[model.Kind]func(*notion.Annotations)
}

// DefaultNotionSerializer serializes the units of the article schema.
var DefaultNotionSerializer = &NotionSerializer{
	Schema: article.Schema,
	Nodes:  defaultToNotion,
	Marks:  defaultMarks,
}

var defaultToNotion = map[model.Kind]ToNotionBlock{
	article.ARTICLE:    flatten,
	article.HEADER:     flatten,
	article.FOOTER:     flatten,
	article.ABSTRACT:   flatten,
	article.S1:         flatten,
	article.S2:         flatten,
	article.S3:         flatten,
	article.S4:         flatten,
	article.S5:         flatten,
	article.ASIDE:      flatten,
	article.FIGURE:     flatten,
	article.DETAILS:    flatten,
	article.DL:         flatten,
	article.TOC:        flatten,
	article.P:          paragraphBlock,
	article.NOTE:       paragraphBlock,
	article.ADDRESS:    paragraphBlock,
	article.SUMMARY:    paragraphBlock,
	article.FIGCAPTION: paragraphBlock,
	article.DT:         paragraphBlock,
	article.DD:         paragraphBlock,
	article.CASCADEH:   paragraphBlock,
	article.H1:         headingBlock,
	article.H2:         headingBlock,
	article.H3:         headingBlock,
	article.H4:         headingBlock,
	article.H5:         headingBlock,
	article.H6:         headingBlock,
	article.BLOCKQUOTE: quoteBlock,
	article.UL:         listBlocks,
	article.OL:         listBlocks,
	article.CASCADE:    listBlocks,
	article.CODEBLOCK:  codeBlock,
	article.CODELIST:   codeBlock,
	article.TABLE:      tableBlock,
	article.IMG:        imageBlock,
	article.HR: func(*NotionSerializer, *html.Node) []notion.Block {
		return []notion.Block{&notion.DividerBlock{}}
	},
}

var defaultMarks = map[model.Kind]func(*notion.Annotations){
	article.STRONG: func(a *notion.Annotations) { a.Bold = true },
	article.B:      func(a *notion.Annotations) { a.Bold = true },
	article.EM:     func(a *notion.Annotations) { a.Italic = true },
	article.I:      func(a *notion.Annotations) { a.Italic = true },
	article.CITE:   func(a *notion.Annotations) { a.Italic = true },
	article.DEL:    func(a *notion.Annotations) { a.Strikethrough = true },
	article.S:      func(a *notion.Annotations) { a.Strikethrough = true },
	article.U:      func(a *notion.Annotations) { a.Underline = true },
	article.INS:    func(a *notion.Annotations) { a.Underline = true },
	article.CODE:   func(a *notion.Annotations) { a.Code = true },
	article.KBD:    func(a *notion.Annotations) { a.Code = true },
	article.SAMP:   func(a *notion.Annotations) { a.Code = true },
}

// SerializePage serializes top-level units to the children of a page.
func (s *NotionSerializer) SerializePage(nodes []*html.Node) []notion.Block {
	var result []notion.Block
	for _, n := range nodes {
		result = append(result, s.SerializeNode(n)...)
	}
	return result
}

// SerializeNode serializes a single unit and its subtree.
func (s *NotionSerializer) SerializeNode(n *html.Node) []notion.Block {
	kind, err := s.Schema.KindOf(n)
	if err != nil {
		slog.Debug("Skipping unit", "tag", n.Data, "err", err)
		return nil
	}
	fn := s.Nodes[kind]
	if fn == nil {
		slog.Debug("No Notion block for kind", "kind", kind)
		return nil
	}
	return fn(s, n)
}

// RichText serializes the inline content of n.
func (s *NotionSerializer) RichText(n *html.Node) []notion.RichText {
	var res []notion.RichText
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = s.richText(c, notion.Annotations{}, nil, res)
	}
	return res
}

func (s *NotionSerializer) richText(n *html.Node, ann notion.Annotations, link *notion.Link, res []notion.RichText) []notion.RichText {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return res
		}
		return appendText(res, n.Data, ann, link)
	case html.ElementNode:
	default:
		return res
	}
	kind, err := s.Schema.KindOf(n)
	if err != nil {
		return res
	}
	switch kind {
	case article.BR:
		return appendText(res, "\n", ann, link)
	case article.IMG:
		return appendText(res, model.Attr(n, "alt"), ann, link)
	case article.A:
		if href := model.Attr(n, "href"); href != "" {
			link = &notion.Link{URL: href}
		}
	case article.RP:
		return res
	}
	if mark, ok := s.Marks[kind]; ok {
		mark(&ann)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		res = s.richText(c, ann, link, res)
	}
	return res
}

// appendText merges text into the last run when both carry the same
// annotations and link.
func appendText(res []notion.RichText, text string, ann notion.Annotations, link *notion.Link) []notion.RichText {
	if last := len(res) - 1; last >= 0 && sameRun(res[last], ann, link) {
		res[last].Text.Content += text
		res[last].PlainText += text
		return res
	}
	rt := notion.RichText{
		Type:      notion.RichTextTypeText,
		PlainText: text,
		Text:      &notion.Text{Content: text, Link: link},
	}
	if ann != (notion.Annotations{}) {
		a := ann
		rt.Annotations = &a
	}
	if link != nil {
		href := link.URL
		rt.HRef = &href
	}
	return append(res, rt)
}

func sameRun(rt notion.RichText, ann notion.Annotations, link *notion.Link) bool {
	if rt.Text == nil {
		return false
	}
	var prev notion.Annotations
	if rt.Annotations != nil {
		prev = *rt.Annotations
	}
	if prev != ann {
		return false
	}
	switch {
	case rt.Text.Link == nil && link == nil:
		return true
	case rt.Text.Link == nil || link == nil:
		return false
	}
	return rt.Text.Link.URL == link.URL
}

func flatten(s *NotionSerializer, n *html.Node) []notion.Block {
	var res []notion.Block
	for _, c := range model.Elements(n) {
		res = append(res, s.SerializeNode(c)...)
	}
	return res
}

func paragraphBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	return []notion.Block{&notion.ParagraphBlock{RichText: s.RichText(n)}}
}

// Notion has three heading levels; deeper headings use the third.
func headingBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	text := s.RichText(n)
	switch n.Data {
	case "h1":
		return []notion.Block{&notion.Heading1Block{RichText: text}}
	case "h2":
		return []notion.Block{&notion.Heading2Block{RichText: text}}
	}
	return []notion.Block{&notion.Heading3Block{RichText: text}}
}

func quoteBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	children := flatten(s, n)
	q := &notion.QuoteBlock{}
	if len(children) > 0 {
		if p, ok := children[0].(*notion.ParagraphBlock); ok {
			q.RichText = p.RichText
			children = children[1:]
		}
	}
	q.Children = children
	return []notion.Block{q}
}

// listBlocks serializes the items of a list. The inline content of an item
// becomes the text of its block, nested blocks become its children.
func listBlocks(s *NotionSerializer, n *html.Node) []notion.Block {
	ordered := n.Data == "ol"
	var res []notion.Block
	for _, li := range model.Elements(n) {
		text, children := s.listItem(li)
		if ordered {
			res = append(res, &notion.NumberedListItemBlock{RichText: text, Children: children})
		} else {
			res = append(res, &notion.BulletedListItemBlock{RichText: text, Children: children})
		}
	}
	return res
}

func (s *NotionSerializer) listItem(li *html.Node) ([]notion.RichText, []notion.Block) {
	var text []notion.RichText
	var children []notion.Block
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if s.isBlock(c) {
			children = append(children, s.SerializeNode(c)...)
			continue
		}
		text = s.richText(c, notion.Annotations{}, nil, text)
	}
	return text, children
}

func (s *NotionSerializer) isBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	kind, err := s.Schema.KindOf(n)
	if err != nil {
		return false
	}
	if kind == article.CASCADEH {
		return true
	}
	flags, err := s.Schema.Classify(kind)
	return err == nil && flags.Has(model.Blocks)
}

func codeBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	lang := model.Attr(n, "lang")
	if lang == "" {
		if code := model.FirstElement(n); code != nil {
			lang = model.Attr(code, "lang")
		}
	}
	if lang == "" {
		lang = "plain text"
	}
	var lines []string
	if n.Data == "ol" {
		for _, li := range model.Elements(n) {
			lines = append(lines, model.TextContent(li))
		}
	} else {
		lines = append(lines, model.TextContent(n))
	}
	text := strings.Join(lines, "\n")
	return []notion.Block{&notion.CodeBlock{
		RichText: []notion.RichText{{
			Type:      notion.RichTextTypeText,
			PlainText: text,
			Text:      &notion.Text{Content: text},
		}},
		Language: &lang,
	}}
}

func tableBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	info, err := s.Schema.Table(n)
	if err != nil {
		slog.Debug("Skipping table", "err", err)
		return nil
	}
	var res []notion.Block
	if info.Caption != nil {
		res = append(res, &notion.ParagraphBlock{RichText: s.RichText(info.Caption)})
	}
	table := &notion.TableBlock{
		TableWidth:      info.Cols,
		HasColumnHeader: info.HeadRow,
		HasRowHeader:    info.FirstColHeader,
	}
	for _, tr := range info.AllRows() {
		cells := make([][]notion.RichText, info.Cols)
		for i, td := range model.Elements(tr) {
			if i < info.Cols {
				cells[i] = s.RichText(td)
			}
		}
		table.Children = append(table.Children, &notion.TableRowBlock{Cells: cells})
	}
	return append(res, table)
}

func imageBlock(s *NotionSerializer, n *html.Node) []notion.Block {
	img := &notion.ImageBlock{
		Type:     notion.FileTypeExternal,
		External: &notion.FileExternal{URL: model.Attr(n, "src")},
	}
	if alt := model.Attr(n, "alt"); alt != "" {
		img.Caption = appendText(nil, alt, notion.Annotations{}, nil)
	}
	return []notion.Block{img}
}
