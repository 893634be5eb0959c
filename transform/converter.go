package transform

import (
	"errors"
	"log/slog"
	"slices"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/extract"
	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/property"
)

// ErrFixed is returned when relocating or removing a fixed-position unit.
var ErrFixed = errors.New("unit has a fixed position")

// carried are the attributes a converted unit inherits.
var carried = []string{"id", "class", "dir"}

// Converter orchestrates edits over the factory, the extractor and the
// property processor.
type Converter struct {
	schema  *model.Schema
	factory *factory.Factory
	extract *extract.Extractor
	props   *property.Processor
}

// New returns a converter working with f.
func New(f *factory.Factory) *Converter {
	return &Converter{
		schema:  f.Schema(),
		factory: f,
		extract: extract.New(f),
		props:   property.New(f),
	}
}

// Convert replaces el with a new unit of kind target built from the data
// extracted from el. Extraction completes before creation starts. It returns
// nil and no error when el cannot seed a target unit, and an
// *model.IllegalChildError, before any change, when a target unit may not
// take the place of el.
func (c *Converter) Convert(el *html.Node, target model.Kind) (*html.Node, error) {
	kind, err := c.schema.KindOf(el)
	if err != nil {
		return nil, err
	}
	if _, err := c.schema.Spec(target); err != nil {
		return nil, err
	}
	if kind == target {
		return el, nil
	}
	parent, next := el.Parent, el.NextSibling
	if parent != nil {
		pk, err := c.schema.KindOf(parent)
		if err != nil {
			return nil, err
		}
		if !c.schema.IsLegalChild(pk, target) {
			return nil, &model.IllegalChildError{Parent: pk, Child: target}
		}
	}
	data := c.extract.Extract(el, target)
	if data == nil {
		slog.Debug("Unsupported conversion", "kind", kind, "target", target)
		return nil, nil
	}
	opts := factory.Options{}
	for _, a := range carried {
		if model.HasAttr(el, a) {
			opts[a] = model.Attr(el, a)
		}
	}
	n, err := c.factory.Create(target, data.Content(), opts)
	if err != nil {
		return nil, err
	}
	reused := slices.Contains(data.All(), el)
	if parent != nil {
		if el.Parent == parent {
			model.Replace(el, n)
		} else {
			model.InsertBefore(parent, n, next)
		}
	}
	if !reused {
		c.schema.Forget(el)
	}
	return n, nil
}

// ConvertAll converts every unit of a selection. Units that cannot seed the
// target are skipped; the batch stops at the first error.
func (c *Converter) ConvertAll(els []*html.Node, target model.Kind) ([]*html.Node, error) {
	var steps []Step
	for _, el := range els {
		steps = append(steps, &ConvertStep{El: el, Target: target})
	}
	return c.Run(steps...)
}

// Run applies steps in order and returns the units they produced. Skipped
// steps produce nothing; the run stops at the first failure.
func (c *Converter) Run(steps ...Step) ([]*html.Node, error) {
	var res []*html.Node
	for _, s := range steps {
		r := s.Apply(c)
		if r.Err != nil {
			slog.Debug("Step failed", "step", s.ToJSON(), "err", r.Err)
			return res, r.Err
		}
		slog.Debug("Step applied", "step", s.ToJSON(), "skipped", r.Node == nil)
		if r.Node != nil {
			res = append(res, r.Node)
		}
	}
	return res, nil
}

// Insert creates a unit and inserts it under parent, before the given
// sibling or at the end when before is nil.
func (c *Converter) Insert(parent, before *html.Node, kind model.Kind, content any, opts map[string]string) (*html.Node, error) {
	if err := c.checkPlacement(parent, kind); err != nil {
		return nil, err
	}
	n, err := c.factory.Create(kind, content, opts)
	if err != nil {
		return nil, err
	}
	model.InsertBefore(parent, n, before)
	return n, nil
}

// Move relocates el under parent, before the given sibling or at the end.
func (c *Converter) Move(el, parent, before *html.Node) error {
	kind, err := c.schema.KindOf(el)
	if err != nil {
		return err
	}
	if !c.schema.Movable(kind) {
		return ErrFixed
	}
	if err := c.checkPlacement(parent, kind); err != nil {
		return err
	}
	if before == el {
		return nil
	}
	model.InsertBefore(parent, el, before)
	return nil
}

// Remove detaches el and drops the kind associations of its subtree.
func (c *Converter) Remove(el *html.Node) error {
	kind, err := c.schema.KindOf(el)
	if err != nil {
		return err
	}
	if !c.schema.Movable(kind) {
		return ErrFixed
	}
	model.Detach(el)
	c.schema.Forget(el)
	return nil
}

// Options returns the kinds insertable under every given unit.
func (c *Converter) Options(els ...*html.Node) ([]model.Kind, error) {
	kinds := make([]model.Kind, 0, len(els))
	for _, el := range els {
		k, err := c.schema.KindOf(el)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return c.schema.Options(kinds...)
}

// Targets returns the kinds el can be converted to in place: legal under its
// parent and seeded by its data.
func (c *Converter) Targets(el *html.Node) ([]model.Kind, error) {
	kind, err := c.schema.KindOf(el)
	if err != nil {
		return nil, err
	}
	candidates := c.schema.Kinds()
	if el.Parent != nil {
		if candidates, err = c.Options(el.Parent); err != nil {
			return nil, err
		}
	}
	var res []model.Kind
	for _, k := range candidates {
		if k != kind && c.extract.Extract(el, k) != nil {
			res = append(res, k)
		}
	}
	return res, nil
}

// Update edits the properties of a uniform selection.
func (c *Converter) Update(els []*html.Node, names []string, values []any, extra ...any) error {
	_, err := c.Run(&SetAttrsStep{Els: els, Names: names, Values: values, Extra: extra})
	return err
}

func (c *Converter) checkPlacement(parent *html.Node, kind model.Kind) error {
	pk, err := c.schema.KindOf(parent)
	if err != nil {
		return err
	}
	if !c.schema.IsLegalChild(pk, kind) {
		return &model.IllegalChildError{Parent: pk, Child: kind}
	}
	return nil
}
