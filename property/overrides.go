package property

import (
	"fmt"
	"slices"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// Table column header names. The value is the header column content: nil or
// false removes the column, true inserts it empty, a []any or []string gives
// one cell per body row.
const (
	FirstColumn = "cs0"
	LastColumn  = "cs-1"
)

func overrides() map[model.Kind]override {
	return map[model.Kind]override{
		article.PICTURE: (*Processor).updatePicture,
		article.RUBY:    (*Processor).updateRuby,
		article.TIME:    (*Processor).updateDatetime,
		article.DEL:     (*Processor).updateDatetime,
		article.INS:     (*Processor).updateDatetime,
		article.TABLE:   (*Processor).updateTable,
		article.HR:      (*Processor).updateDimensions,
		article.SPACE:   (*Processor).updateDimensions,
		article.BLANK:   (*Processor).updateDimensions,
	}
}

func preparers() map[model.Kind]preparer {
	return map[model.Kind]preparer{
		article.PICTURE: (*Processor).preparePicture,
	}
}

// preparePicture creates the SOURCE nodes described by extra[0].
func (p *Processor) preparePicture(extra []any) ([]any, error) {
	if len(extra) == 0 || extra[0] == nil {
		return extra, nil
	}
	opts, ok := extra[0].([]factory.Options)
	if !ok {
		return extra, nil
	}
	nodes, err := p.sources(opts)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(extra)
	out[0] = nodes
	return out, nil
}

// updatePicture sets the attributes on the fallback image and replaces the
// sources with extra[0]. The image always stays the last child.
func (p *Processor) updatePicture(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	var img *html.Node
	var sources []*html.Node
	for _, c := range model.Elements(el) {
		if p.schema.Is(c, article.IMG) {
			img = c
		} else {
			sources = append(sources, c)
		}
	}
	if img == nil {
		var err error
		if img, err = p.factory.Create(article.IMG, nil, nil); err != nil {
			return err
		}
	}
	for i, name := range names {
		setAttr(img, name, values[i])
	}
	if len(extra) > 0 && extra[0] != nil {
		fresh, err := p.sources(extra[0])
		if err != nil {
			return err
		}
		for _, s := range sources {
			model.Detach(s)
			p.schema.Forget(s)
		}
		for _, s := range fresh {
			model.InsertBefore(el, s, nil)
		}
	}
	model.Append(el, img)
	return nil
}

func (p *Processor) sources(v any) ([]*html.Node, error) {
	var nodes []*html.Node
	switch c := v.(type) {
	case []factory.Options:
		for _, o := range c {
			n, err := p.factory.Create(article.SOURCE, nil, o)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
	case []*html.Node:
		nodes = c
	case *html.Node:
		nodes = []*html.Node{c}
	default:
		return nil, fmt.Errorf("picture sources cannot be %T", v)
	}
	for _, n := range nodes {
		if !p.schema.Is(n, article.SOURCE) {
			return nil, &model.IllegalChildError{Parent: article.PICTURE, Child: kindOrText(p.schema, n)}
		}
	}
	return nodes, nil
}

// updateRuby sets the reading text from extra[0] and the base text from
// extra[1]. The text node of the first reading is reused, never replaced;
// several base and reading pairs are merged into one.
func (p *Processor) updateRuby(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	for i, name := range names {
		setAttr(el, name, values[i])
	}
	var rbs, rts, rps []*html.Node
	var bare []*html.Node
	for _, c := range model.Children(el) {
		switch {
		case c.Type == html.TextNode:
			bare = append(bare, c)
		case p.schema.Is(c, article.RB):
			rbs = append(rbs, c)
		case p.schema.Is(c, article.RT):
			rts = append(rts, c)
		case p.schema.Is(c, article.RP):
			rps = append(rps, c)
		}
	}
	base := ""
	for _, n := range append(bare, rbs...) {
		base += model.TextContent(n)
	}
	reading := ""
	for _, n := range rts {
		reading += model.TextContent(n)
	}
	if len(extra) > 0 && extra[0] != nil {
		reading = textOf(extra[0])
	}
	if len(extra) > 1 && extra[1] != nil {
		base = textOf(extra[1])
	}

	rb, err := p.first(rbs, article.RB)
	if err != nil {
		return err
	}
	rt, err := p.first(rts, article.RT)
	if err != nil {
		return err
	}
	setText(rb, base)
	setText(rt, reading)

	var open, closing *html.Node
	if len(rps) > 0 {
		open = rps[0]
	}
	if len(rps) > 1 {
		closing = rps[len(rps)-1]
	}
	keep := []*html.Node{rb, open, rt, closing}
	for _, c := range model.Children(el) {
		if !slices.Contains(keep, c) {
			el.RemoveChild(c)
			p.schema.Forget(c)
		}
	}
	model.Append(el, keep...)
	return nil
}

// first returns the first node of a group, creating one when it is empty.
func (p *Processor) first(nodes []*html.Node, kind model.Kind) (*html.Node, error) {
	if len(nodes) > 0 {
		return nodes[0], nil
	}
	return p.factory.Create(kind, nil, nil)
}

// setText sets the text of el through its first text node, which is kept.
// The other children go.
func setText(el *html.Node, text string) {
	var tn *html.Node
	for _, c := range model.Children(el) {
		if tn == nil && c.Type == html.TextNode {
			tn = c
			continue
		}
		el.RemoveChild(c)
	}
	if tn == nil {
		tn = model.NewText("")
		el.AppendChild(tn)
	}
	tn.Data = text
}

func textOf(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case *html.Node:
		return model.TextContent(c)
	}
	return fmt.Sprint(v)
}

// updateDatetime combines the date and time attributes into datetime.
func (p *Processor) updateDatetime(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	var date, clock string
	touched := false
	for i, name := range names {
		switch name {
		case "date":
			date, _ = attrValue(values[i])
			touched = true
		case "time":
			clock, _ = attrValue(values[i])
			touched = true
		default:
			setAttr(el, name, values[i])
		}
	}
	if touched {
		if dt := factory.Datetime(date, clock); dt != "" {
			model.SetAttr(el, "datetime", dt)
		} else {
			model.RemoveAttr(el, "datetime")
		}
	}
	return p.replaceContent(kind, el, extra)
}

// updateDimensions writes dimension options as CSS. Rules also take their
// line style as the role attribute; spacers change no attribute at all.
func (p *Processor) updateDimensions(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	dims := article.Dimensions[kind]
	for i, name := range names {
		switch {
		case dims[name] != "":
			v, ok := attrValue(values[i])
			if !ok {
				v = ""
			}
			model.SetStyle(el, dims[name], article.CSSLength(v))
		case kind == article.HR && name == "role":
			setAttr(el, name, values[i])
		}
	}
	return nil
}

func kindOrText(s *model.Schema, n *html.Node) model.Kind {
	if k, err := s.KindOf(n); err == nil {
		return k
	}
	return model.Kind(n.Data)
}
