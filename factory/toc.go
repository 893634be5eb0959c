package factory

import (
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// TableOfContents builds a TOC unit from the section headings under root,
// one cascading list level per section depth.
func (f *Factory) TableOfContents(root *html.Node) (*html.Node, error) {
	cascade, err := f.cascade(root)
	if err != nil {
		return nil, err
	}
	return f.Create(article.TOC, cascade, nil)
}

func (f *Factory) cascade(parent *html.Node) (*html.Node, error) {
	list, err := f.Create(article.CASCADE, nil, nil)
	if err != nil {
		return nil, err
	}
	for _, c := range model.Elements(parent) {
		k, err := f.schema.KindOf(c)
		if err != nil || !slices.Contains(article.Sections, k) {
			continue
		}
		spec, _ := f.schema.Spec(k)
		title := ""
		if h := model.FirstElement(c); h != nil && f.schema.Is(h, spec.Head) {
			title = strings.Join(strings.Fields(model.TextContent(h)), " ")
		}
		sub, err := f.cascade(c)
		if err != nil {
			return nil, err
		}
		var body any
		if sub.FirstChild != nil {
			body = sub
		}
		li, err := f.Create(article.CASCADELI, Pair{Head: title, Body: body}, nil)
		if err != nil {
			return nil, err
		}
		list.AppendChild(li)
	}
	return list, nil
}
