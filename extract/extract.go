// Package extract pulls the content of an existing unit out in the form a new
// unit of some target kind needs, for conversions and moves.
//
// Dispatch is driven by the target: the same source element is read one way
// for a paragraph and another way for a definition list. Sources are first
// reduced to a target-independent shape (heading, rows, body blocks), then
// each target family builds its data from the shape.
package extract

import (
	"fmt"
	"log/slog"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

type targetFunc func(x *Extractor, target *model.KindSpec, s *shape) *Data

// Extractor extracts unit data for conversion targets.
type Extractor struct {
	schema  *model.Schema
	factory *factory.Factory
	targets map[string]targetFunc
}

// New returns an extractor creating its intermediate units with f.
func New(f *factory.Factory) *Extractor {
	return &Extractor{
		schema:  f.Schema(),
		factory: f,
		targets: map[string]targetFunc{
			article.CompatLine:       toLine,
			article.CompatHeading:    toLine,
			article.CompatItem:       toLine,
			article.CompatCell:       toLine,
			article.CompatList:       toList,
			article.CompatSmallBlock: toBlock,
			article.CompatSection:    toBlock,
			article.CompatFigure:     toBlock,
			article.CompatNode:       toNode,
			article.CompatCode:       toCode,
			article.CompatTable:      toTable,
		},
	}
}

// Extract returns the data src offers to a new unit of kind target, or nil
// when src cannot seed such a unit. The caller skips such sources.
//
// Self-extracting units give themselves for every target. Structurally
// atomic units give nil as sources and as targets, and a rule gives nil
// unless the target may hold it.
// Extract never panics.
func (x *Extractor) Extract(src *html.Node, target model.Kind) (data *Data) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Extraction failed", "target", target, "err", r)
			data = nil
		}
	}()
	if src == nil {
		return nil
	}
	tspec, err := x.schema.Spec(target)
	if err != nil {
		slog.Warn("Extraction for an unknown kind", "target", target)
		return nil
	}
	k, err := x.schema.KindOf(src)
	if err != nil {
		return nil
	}
	sspec, _ := x.schema.Spec(k)
	switch {
	case sspec.Atomic:
		return nil
	case sspec.SelfExtract:
		return wrap(tspec, []*html.Node{src})
	case tspec.Atomic:
		return nil
	case sspec.Flags.Has(model.Special):
		if x.schema.IsLegalChild(target, k) {
			return wrap(tspec, []*html.Node{src})
		}
		return nil
	}
	s := x.gather(src)
	if s == nil {
		return nil
	}
	if tspec.Tag == model.TextTag {
		text := x.text(s)
		if !s.code {
			text = Normalize(text)
		}
		return &Data{Nodes: []*html.Node{model.NewText(text)}}
	}
	if tspec.Flags.Any(model.Empty | model.Special) {
		return nil
	}
	if fn := x.targets[tspec.Compat]; fn != nil {
		return fn(x, tspec, s)
	}
	switch target {
	case article.THEAD, article.TBODY, article.TFOOT:
		return &Data{Nodes: x.tableRows(s, target == article.THEAD)}
	case article.TR:
		return &Data{Nodes: x.cells(tspec, s)}
	case article.RUBY:
		rb := x.create(article.RB, Normalize(x.text(s)))
		return &Data{Nodes: []*html.Node{rb}}
	}
	if tspec.Flags.Has(model.Content) {
		return toLine(x, tspec, s)
	}
	return nil
}

// ExtractAll extracts every source, skipping those that cannot seed target.
func (x *Extractor) ExtractAll(srcs []*html.Node, target model.Kind) []*Data {
	var res []*Data
	for _, src := range srcs {
		if d := x.Extract(src, target); d != nil {
			res = append(res, d)
		}
	}
	return res
}

func wrap(target *model.KindSpec, nodes []*html.Node) *Data {
	if target.Head != "" {
		return &Data{Paired: true, Body: nodes}
	}
	return &Data{Nodes: nodes}
}

// create builds an intermediate unit. A failure is a grammar gap between
// shape and target; it unwinds to Extract, which reports no data.
func (x *Extractor) create(kind model.Kind, content any) *html.Node {
	n, err := x.factory.Create(kind, content, nil)
	if err != nil {
		panic(fmt.Errorf("creating %s: %w", kind, err))
	}
	return n
}
