package property

import (
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// updateTable sets the table attributes and inserts or removes the first and
// last header columns. Inserting a header column that is present, or
// removing one that is absent, does nothing.
func (p *Processor) updateTable(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	for i, name := range names {
		var err error
		switch name {
		case FirstColumn:
			err = p.headerColumn(el, true, values[i])
		case LastColumn:
			err = p.headerColumn(el, false, values[i])
		default:
			setAttr(el, name, values[i])
		}
		if err != nil {
			return err
		}
	}
	return p.replaceContent(kind, el, extra)
}

func (p *Processor) headerColumn(el *html.Node, first bool, value any) error {
	info, err := p.schema.Table(el)
	if err != nil {
		return err
	}
	if len(info.BodyRows)+len(info.FootRows) == 0 {
		return nil
	}
	present := info.LastColHeader
	if first {
		present = info.FirstColHeader
	}
	insert := value != nil
	if v, ok := value.(bool); ok {
		insert = v
	}
	switch {
	case insert && !present:
		err = p.insertColumn(el, info, first, value)
	case !insert && present:
		removeColumn(p.schema, info, first)
	}
	if err != nil {
		return err
	}
	_, err = p.schema.Table(el)
	return err
}

func (p *Processor) insertColumn(el *html.Node, info *model.TableInfo, first bool, value any) error {
	var contents []any
	switch v := value.(type) {
	case []any:
		contents = v
	case []string:
		for _, s := range v {
			contents = append(contents, s)
		}
	}
	// Validate everything before the first write.
	var cells []*html.Node
	for range info.HeadRows {
		th, err := p.factory.Create(article.TH, nil, nil)
		if err != nil {
			return err
		}
		cells = append(cells, th)
	}
	for i := range len(info.BodyRows) + len(info.FootRows) {
		var content any
		if i < len(contents) {
			content = contents[i]
		}
		th, err := p.factory.Create(article.TH, content, nil)
		if err != nil {
			return err
		}
		cells = append(cells, th)
	}
	for i, tr := range info.AllRows() {
		var ref *html.Node
		if first {
			ref = model.FirstElement(tr)
		}
		model.InsertBefore(tr, cells[i], ref)
	}
	return nil
}

func removeColumn(s *model.Schema, info *model.TableInfo, first bool) {
	for _, tr := range info.AllRows() {
		cells := model.Elements(tr)
		if len(cells) == 0 {
			continue
		}
		cell := cells[len(cells)-1]
		if first {
			cell = cells[0]
		}
		tr.RemoveChild(cell)
		s.Forget(cell)
	}
}
