// Package factory builds well-formed units: element subtrees tagged with their
// kind, whose every child is legal under the schema.
package factory

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// globalAttrs are accepted on every unit.
var globalAttrs = []string{"id", "class", "title", "dir"}

type builderFunc func(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error

// Factory creates units of a schema.
type Factory struct {
	schema      *model.Schema
	highlighter Highlighter
	sanitize    bool
	policy      *bluemonday.Policy
	builders    map[model.Kind]builderFunc
}

// Option configures a Factory.
type Option func(*Factory)

// WithHighlighter sets the highlighter run on plain-text code content when a
// language is given.
func WithHighlighter(h Highlighter) Option {
	return func(f *Factory) { f.highlighter = h }
}

// WithSanitizer toggles sanitization of pasted markup in FillFromHTML. It is
// on by default.
func WithSanitizer(on bool) Option {
	return func(f *Factory) { f.sanitize = on }
}

// New returns a factory for the given schema.
func New(schema *model.Schema, opts ...Option) *Factory {
	f := &Factory{schema: schema, sanitize: true}
	for _, opt := range opts {
		opt(f)
	}
	f.builders = builders()
	f.policy = NewPolicy(schema)
	return f
}

// Schema returns the schema units are validated against.
func (f *Factory) Schema() *model.Schema { return f.schema }

// Create builds a unit of the given kind.
//
// The content may be nil, a string, HTML, a node, a list of nodes, a list of
// strings, a list mixing those, a Pair for units with a leading heading, or
// the kind-specific TableSpec and RubySpec. A string is coerced into a text
// node where text is legal, or else into the unit's item kind (an LI for a
// list). Runs of nodes that are illegal in the unit but legal in its item
// kind are wrapped in one item. Anything else illegal fails with an
// *model.IllegalChildError, and the given nodes are put back where they were.
func (f *Factory) Create(kind model.Kind, content any, opts Options) (*html.Node, error) {
	spec, err := f.schema.Spec(kind)
	if err != nil {
		return nil, err
	}
	if spec.Tag == model.TextTag {
		switch c := content.(type) {
		case nil:
			return model.NewText(""), nil
		case string:
			return model.NewText(c), nil
		}
		return nil, fmt.Errorf("%s takes a string, got %T", kind, content)
	}
	el := model.NewElement(spec.Tag)
	if spec.Role {
		model.SetAttr(el, "role", kind.Role())
	}
	if err := f.schema.Tag(el, kind); err != nil {
		return nil, err
	}
	build := f.builders[kind]
	if build == nil {
		build = buildDefault
	}
	restore := remember(content)
	if err := build(f, el, spec, content, opts); err != nil {
		restore()
		f.schema.Forget(el)
		return nil, err
	}
	return el, nil
}

func buildDefault(f *Factory, el *html.Node, spec *model.KindSpec, content any, opts Options) error {
	f.setOptions(el, spec, opts)
	return f.fill(el, spec, content)
}

// setOptions writes the recognized options of a unit as attributes, or as CSS
// for dimension options.
func (f *Factory) setOptions(el *html.Node, spec *model.KindSpec, opts Options) {
	dims := article.Dimensions[spec.Key]
	for _, key := range slices.Sorted(maps.Keys(opts)) {
		val := opts[key]
		switch {
		case dims[key] != "":
			model.SetStyle(el, dims[key], article.CSSLength(val))
		case key == "role" && spec.Role:
			slog.Debug("Role option ignored on a role-bearing unit", "kind", spec.Key, "role", val)
		case slices.Contains(spec.Attrs, key) || slices.Contains(globalAttrs, key):
			model.SetAttr(el, key, val)
		default:
			slog.Debug("Unrecognized unit option", "kind", spec.Key, "option", key)
		}
	}
}

func (f *Factory) fill(el *html.Node, spec *model.KindSpec, content any) error {
	switch c := content.(type) {
	case nil:
		if spec.Head != "" && spec.Flags.Has(model.Sealed) {
			return f.fillPair(el, spec, Pair{})
		}
		return nil
	case string:
		return f.fillString(el, spec, c)
	case []string:
		for _, s := range c {
			if err := f.fillString(el, spec, s); err != nil {
				return err
			}
		}
		return nil
	case HTML:
		nodes, err := f.parse(el, string(c))
		if err != nil {
			return err
		}
		return f.appendNodes(el, spec, nodes)
	case *html.Node:
		return f.appendNodes(el, spec, []*html.Node{c})
	case []*html.Node:
		return f.appendNodes(el, spec, c)
	case Pair:
		return f.fillPair(el, spec, c)
	case []any:
		for _, item := range c {
			if err := f.fill(el, spec, item); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%s does not take %T content", spec.Key, content)
}

func (f *Factory) fillString(el *html.Node, spec *model.KindSpec, s string) error {
	text := f.schema.TextKind()
	switch {
	case f.schema.IsLegalChild(spec.Key, text):
		if s != "" {
			el.AppendChild(model.NewText(s))
		}
		return nil
	case spec.Item != "":
		item, err := f.Create(spec.Item, s, nil)
		if err != nil {
			return err
		}
		el.AppendChild(item)
		return nil
	case spec.Head != "":
		return f.fillPair(el, spec, Pair{Head: s})
	}
	return &model.IllegalChildError{Parent: spec.Key, Child: text}
}

func (f *Factory) fillPair(el *html.Node, spec *model.KindSpec, p Pair) error {
	if spec.Head == "" {
		if err := f.fill(el, spec, p.Head); err != nil {
			return err
		}
		return f.fill(el, spec, p.Body)
	}
	var head *html.Node
	switch h := p.Head.(type) {
	case nil:
		if spec.Flags.Has(model.Sealed) {
			var err error
			if head, err = f.Create(spec.Head, nil, nil); err != nil {
				return err
			}
		}
	case *html.Node:
		if f.schema.Is(h, spec.Head) {
			head = h
			break
		}
		var err error
		if head, err = f.Create(spec.Head, h, nil); err != nil {
			return err
		}
	default:
		var err error
		if head, err = f.Create(spec.Head, h, nil); err != nil {
			return err
		}
	}
	if head != nil {
		model.Append(el, head)
	}
	if p.Body == nil {
		return nil
	}
	return f.fill(el, spec, p.Body)
}

type position struct {
	node, parent, next *html.Node
}

// remember records where the nodes held by content are and returns a func
// putting them back there.
func remember(content any) func() {
	var at []position
	var collect func(v any)
	collect = func(v any) {
		switch c := v.(type) {
		case *html.Node:
			if c != nil {
				at = append(at, position{node: c, parent: c.Parent, next: c.NextSibling})
			}
		case []*html.Node:
			for _, n := range c {
				collect(n)
			}
		case Pair:
			collect(c.Head)
			collect(c.Body)
		case []any:
			for _, e := range c {
				collect(e)
			}
		}
	}
	collect(content)
	return func() {
		for i := len(at) - 1; i >= 0; i-- {
			p := at[i]
			model.Detach(p.node)
			if p.parent == nil {
				continue
			}
			next := p.next
			if next != nil && next.Parent != p.parent {
				next = nil
			}
			model.InsertBefore(p.parent, p.node, next)
		}
	}
}

// appendNodes validates every node before appending any, so that a failure
// leaves the nodes where they were.
func (f *Factory) appendNodes(el *html.Node, spec *model.KindSpec, nodes []*html.Node) error {
	type step struct {
		node  *html.Node
		wrap  bool
		blank bool
	}
	text := f.schema.TextKind()
	var plan []step
	for _, n := range nodes {
		if n == nil || n.Type == html.CommentNode {
			continue
		}
		k, err := f.schema.KindOf(n)
		if err != nil {
			return err
		}
		blank := n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
		switch {
		case f.schema.IsLegalChild(spec.Key, k):
			plan = append(plan, step{node: n})
		case blank && spec.Item != "" && f.schema.IsLegalChild(spec.Item, text):
			plan = append(plan, step{node: n, wrap: true, blank: true})
		case blank:
		case spec.Item != "" && f.schema.IsLegalChild(spec.Item, k):
			plan = append(plan, step{node: n, wrap: true})
		default:
			return &model.IllegalChildError{Parent: spec.Key, Child: k}
		}
	}
	// Blank text only joins a run between wrapped content.
	var run []*html.Node
	var blanks []*html.Node
	flush := func() error {
		blanks = nil
		if len(run) == 0 {
			return nil
		}
		item, err := f.Create(spec.Item, run, nil)
		if err != nil {
			return err
		}
		run = nil
		el.AppendChild(item)
		return nil
	}
	for _, s := range plan {
		switch {
		case s.blank:
			if len(run) > 0 {
				blanks = append(blanks, s.node)
			}
		case s.wrap:
			run = append(run, blanks...)
			run = append(run, s.node)
			blanks = nil
		default:
			if err := flush(); err != nil {
				return err
			}
			model.Append(el, s.node)
		}
	}
	return flush()
}

// parse parses trusted markup in the context of el and derives the kind of
// every parsed element.
func (f *Factory) parse(el *html.Node, markup string) ([]*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), el)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	if err := f.adopt(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// adopt re-derives the kind of every element of freshly parsed subtrees and
// drops the formatting whitespace and comments their kinds cannot hold.
func (f *Factory) adopt(nodes []*html.Node) error {
	text := f.schema.TextKind()
	for _, n := range nodes {
		var err error
		model.Walk(n, func(c *html.Node) bool {
			if err != nil || c.Type != html.ElementNode {
				return err == nil
			}
			k, kerr := f.schema.KindOf(c)
			if kerr != nil {
				err = kerr
				return false
			}
			textLegal := f.schema.IsLegalChild(k, text)
			for _, child := range model.Children(c) {
				switch {
				case child.Type == html.CommentNode:
					c.RemoveChild(child)
				case child.Type == html.TextNode && !textLegal && strings.TrimSpace(child.Data) == "":
					c.RemoveChild(child)
				}
			}
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}
