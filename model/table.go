package model

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TableInfo is the helper a table element owns: its row and column structure
// and which headers are present. It describes the table as it was when last
// computed and must not be trusted after the table is mutated.
type TableInfo struct {
	Caption  *html.Node
	HeadRows []*html.Node
	BodyRows []*html.Node
	FootRows []*html.Node

	Rows int
	Cols int
	// The table has a header row section.
	HeadRow bool
	// Every body and foot row starts (ends) with a header cell.
	FirstColHeader bool
	LastColHeader  bool
}

// AllRows returns the rows in document order.
func (t *TableInfo) AllRows() []*html.Node {
	rows := make([]*html.Node, 0, t.Rows)
	rows = append(rows, t.HeadRows...)
	rows = append(rows, t.BodyRows...)
	return append(rows, t.FootRows...)
}

// Table recomputes the helper of a table element from the live tree and
// refreshes the cached entry.
func (s *Schema) Table(n *html.Node) (*TableInfo, error) {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Table {
		return nil, fmt.Errorf("not a table element")
	}
	info := &TableInfo{}
	for _, c := range Elements(n) {
		switch c.DataAtom {
		case atom.Caption:
			info.Caption = c
		case atom.Thead:
			info.HeadRows = append(info.HeadRows, rowsOf(c)...)
		case atom.Tbody:
			info.BodyRows = append(info.BodyRows, rowsOf(c)...)
		case atom.Tfoot:
			info.FootRows = append(info.FootRows, rowsOf(c)...)
		case atom.Tr:
			info.BodyRows = append(info.BodyRows, c)
		}
	}
	info.HeadRow = len(info.HeadRows) > 0
	info.Rows = len(info.HeadRows) + len(info.BodyRows) + len(info.FootRows)
	for _, tr := range info.AllRows() {
		if cols := len(Elements(tr)); cols > info.Cols {
			info.Cols = cols
		}
	}
	inner := append(append([]*html.Node(nil), info.BodyRows...), info.FootRows...)
	if len(inner) > 0 {
		info.FirstColHeader, info.LastColHeader = true, true
		for _, tr := range inner {
			cells := Elements(tr)
			if len(cells) == 0 {
				info.FirstColHeader, info.LastColHeader = false, false
				break
			}
			if cells[0].DataAtom != atom.Th {
				info.FirstColHeader = false
			}
			if cells[len(cells)-1].DataAtom != atom.Th {
				info.LastColHeader = false
			}
		}
		// A one-column table of header cells has one header column, not two.
		if info.Cols == 1 && info.FirstColHeader {
			info.LastColHeader = false
		}
	}
	s.tables.Set(n, info)
	return info, nil
}

// CachedTable returns the helper last computed for n, if it is still cached.
func (s *Schema) CachedTable(n *html.Node) (*TableInfo, bool) {
	return s.tables.Get(n)
}

func rowsOf(section *html.Node) []*html.Node {
	var rows []*html.Node
	for _, c := range Elements(section) {
		if c.DataAtom == atom.Tr {
			rows = append(rows, c)
		}
	}
	return rows
}
