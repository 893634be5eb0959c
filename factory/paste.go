package factory

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

var sizeRegexp = regexp.MustCompile(`^(\d+(\.\d+)?(px|em|rem|ex|pt|in|pc|mm|cm|vh|vw|%)?|auto|inherit|initial|unset)$`)

// NewPolicy returns the sanitizing policy for markup pasted into units of the
// schema: only the tags of its kinds survive, with the role attribute and
// each kind's recognized attributes.
func NewPolicy(schema *model.Schema) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowAttrs("role").Globally()
	p.AllowAttrs(globalAttrs...).Globally()
	styled := map[string]bool{}
	var tags []string
	for _, k := range schema.Kinds() {
		ks, _ := schema.Spec(k)
		if ks.Tag == model.TextTag {
			continue
		}
		tags = append(tags, ks.Tag)
		var attrs []string
		for _, a := range ks.Attrs {
			if a != "date" && a != "time" && a != "role" {
				attrs = append(attrs, a)
			}
		}
		if len(attrs) > 0 {
			p.AllowAttrs(attrs...).OnElements(ks.Tag)
		}
		for _, css := range article.Dimensions[k] {
			if !styled[ks.Tag+" "+css] {
				styled[ks.Tag+" "+css] = true
				p.AllowStyles(css).Matching(sizeRegexp).OnElements(ks.Tag)
			}
		}
	}
	p.AllowElements(tags...)
	p.AllowNoAttrs().OnElements(tags...)
	return p
}

// FillFromHTML parses markup into a container unit and returns the inserted
// nodes. The markup is sanitized first unless the factory was built with
// WithSanitizer(false). No live kind exists for freshly parsed elements, so
// every inserted element has its kind derived from tag and role. Nothing is
// inserted when a node is unresolvable, illegal in the container or holds
// illegal descendants.
func (f *Factory) FillFromHTML(container *html.Node, markup string) ([]*html.Node, error) {
	ck, err := f.schema.KindOf(container)
	if err != nil {
		return nil, err
	}
	spec, err := f.schema.Spec(ck)
	if err != nil {
		return nil, err
	}
	if f.sanitize {
		markup = f.policy.Sanitize(markup)
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	if err := f.adopt(nodes); err != nil {
		return nil, err
	}
	var errs []error
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			errs = append(errs, f.schema.Check(n))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	before := model.Children(container)
	if err := f.appendNodes(container, spec, nodes); err != nil {
		return nil, err
	}
	var inserted []*html.Node
	for _, c := range model.Children(container) {
		if !slices.Contains(before, c) {
			inserted = append(inserted, c)
		}
	}
	return inserted, nil
}

// Parse parses the serialized form of units, as written by the export
// package. The markup is trusted and is not sanitized. Kinds are derived and
// formatting whitespace is dropped where text is illegal, but the grammar is
// not checked; see model.Schema.Check.
func (f *Factory) Parse(markup string) ([]*html.Node, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	var res []*html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.CommentNode:
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
		default:
			res = append(res, n)
		}
	}
	if err := f.adopt(res); err != nil {
		return nil, err
	}
	return res, nil
}
