// Package property edits the attributes and sub-content of existing units.
// Most kinds take plain attribute assignment; tables, ruby, pictures, rules,
// spacers and datetime units have their own update routine.
package property

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
)

// Updater edits one unit. names and values are parallel attribute lists: a
// string value sets the attribute, nil or false removes it, true sets it
// empty and numbers are formatted. extra carries the kind-specific
// sub-content, replacing the children wholesale by default.
type Updater func(el *html.Node, names []string, values []any, extra ...any) error

type override func(p *Processor, kind model.Kind, el *html.Node, names []string, values []any, extra []any) error

// preparer builds the sub-nodes of one element's extra arguments.
type preparer func(p *Processor, extra []any) ([]any, error)

// Processor hands out update routines per kind.
type Processor struct {
	schema    *model.Schema
	factory   *factory.Factory
	overrides map[model.Kind]override
	prepare   map[model.Kind]preparer
}

// New returns a processor building sub-content with f.
func New(f *factory.Factory) *Processor {
	return &Processor{
		schema:    f.Schema(),
		factory:   f,
		overrides: overrides(),
		prepare:   preparers(),
	}
}

// Process returns the update routine of a kind.
func (p *Processor) Process(kind model.Kind) (Updater, error) {
	if _, err := p.schema.Spec(kind); err != nil {
		return nil, err
	}
	o := p.overrides[kind]
	if o == nil {
		o = (*Processor).updateDefault
	}
	return func(el *html.Node, names []string, values []any, extra ...any) error {
		if len(names) != len(values) {
			return fmt.Errorf("%d attribute names for %d values", len(names), len(values))
		}
		return o(p, kind, el, names, values, extra)
	}, nil
}

// Data returns the extra arguments of each element of a selection. Node
// values are copied, and the sub-nodes of kinds such as PICTURE created, once
// per element up front, so that each element owns stable sub-nodes. A single
// element gets raw as is.
func (p *Processor) Data(kind model.Kind, els []*html.Node, raw ...any) ([][]any, error) {
	if _, err := p.schema.Spec(kind); err != nil {
		return nil, err
	}
	if len(els) == 1 {
		return [][]any{raw}, nil
	}
	res := make([][]any, len(els))
	for i := range els {
		args := make([]any, len(raw))
		for j, v := range raw {
			args[j] = p.copyValue(v)
		}
		if prepare := p.prepare[kind]; prepare != nil {
			var err error
			if args, err = prepare(p, args); err != nil {
				return nil, err
			}
		}
		res[i] = args
	}
	return res, nil
}

func (p *Processor) copyValue(v any) any {
	switch c := v.(type) {
	case *html.Node:
		return p.factory.Clone(c)
	case []*html.Node:
		return p.factory.CloneAll(c)
	case []any:
		out := make([]any, len(c))
		for i, e := range c {
			out[i] = p.copyValue(e)
		}
		return out
	}
	return v
}

// ErrMixedSelection is returned by Apply when the selected units are not all
// of one kind.
var ErrMixedSelection = errors.New("selection mixes unit kinds")

// Apply edits every unit of a uniform selection. Units edited before a
// failure stay edited.
func (p *Processor) Apply(els []*html.Node, names []string, values []any, raw ...any) error {
	if len(els) == 0 {
		return nil
	}
	kind, err := p.schema.KindOf(els[0])
	if err != nil {
		return err
	}
	for _, el := range els[1:] {
		if !p.schema.Is(el, kind) {
			return ErrMixedSelection
		}
	}
	update, err := p.Process(kind)
	if err != nil {
		return err
	}
	extras, err := p.Data(kind, els, raw...)
	if err != nil {
		return err
	}
	for i, el := range els {
		if err := update(el, names, values, extras[i]...); err != nil {
			return fmt.Errorf("updating %s: %w", kind, err)
		}
	}
	return nil
}

func (p *Processor) updateDefault(kind model.Kind, el *html.Node, names []string, values []any, extra []any) error {
	for i, name := range names {
		setAttr(el, name, values[i])
	}
	return p.replaceContent(kind, el, extra)
}

// replaceContent replaces the children of el with the first extra argument,
// validated as content of a new unit of the same kind.
func (p *Processor) replaceContent(kind model.Kind, el *html.Node, extra []any) error {
	if len(extra) == 0 || extra[0] == nil {
		return nil
	}
	tmp, err := p.factory.Create(kind, extra[0], nil)
	if err != nil {
		return err
	}
	for _, c := range model.Children(el) {
		p.schema.Forget(c)
	}
	model.ReplaceChildren(el, model.Children(tmp)...)
	return nil
}

func setAttr(el *html.Node, name string, value any) {
	if s, ok := attrValue(value); ok {
		model.SetAttr(el, name, s)
		return
	}
	model.RemoveAttr(el, name)
}

// attrValue formats an attribute value. ok is false when the attribute is to
// be removed.
func attrValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case bool:
		return "", v
	case string:
		return v, true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	}
	slog.Warn("Unsupported attribute value", "value", value)
	return "", false
}
