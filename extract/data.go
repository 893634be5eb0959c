package extract

import (
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
)

// Data is what a source unit offers to a new unit of the target kind.
//
// For targets with a leading heading kind (definition lists, small blocks,
// cascading list nodes, sections, tables, figures) the data is a pair: Head
// is the heading, nil when none is available, and Body the rest. For other
// targets Nodes holds the content.
type Data struct {
	Nodes  []*html.Node
	Head   *html.Node
	Body   []*html.Node
	Paired bool
}

// Content returns the data in the form the factory accepts.
func (d *Data) Content() any {
	if d == nil {
		return nil
	}
	if !d.Paired {
		return d.Nodes
	}
	p := factory.Pair{}
	if d.Head != nil {
		p.Head = d.Head
	}
	if len(d.Body) > 0 {
		p.Body = d.Body
	}
	return p
}

// All returns every node of the data, the heading first.
func (d *Data) All() []*html.Node {
	if d == nil {
		return nil
	}
	if !d.Paired {
		return d.Nodes
	}
	var all []*html.Node
	if d.Head != nil {
		all = append(all, d.Head)
	}
	return append(all, d.Body...)
}
