package factory

import (
	"maps"
	"strings"
)

// HTML is trusted markup, parsed in the context of the unit it is given to.
// Highlighter output is passed this way.
type HTML string

// Pair is the content of a unit with a leading heading part. A nil Head means
// no heading is available: the unit omits it, or generates an empty one when
// its template requires it.
type Pair struct {
	Head any
	Body any
}

// TableSpec is the content of a TABLE unit.
type TableSpec struct {
	Rows    int
	Cols    int
	Caption any
	HeadRow bool
	// Optional cell contents, row-major, the header row first when HeadRow
	// is set.
	Cells [][]any
}

// RubySpec is the content of a RUBY unit: the base text, its reading and
// the optional fallback parentheses around the reading.
type RubySpec struct {
	Base    any
	Reading any
	Open    string
	Close   string
}

// Options are the attribute options of a unit. Each kind recognizes its own
// keys; unrecognized keys are ignored.
type Options map[string]string

// Clone returns a copy of the options that can be modified freely.
func (o Options) Clone() Options {
	if o == nil {
		return Options{}
	}
	return maps.Clone(o)
}

// Datetime combines a date and a time of day into a datetime attribute value.
// Either part may be empty.
func Datetime(date, clock string) string {
	var parts []string
	for _, p := range []string{date, clock} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Highlighter colours source code. The returned markup contains only text and
// the two inline wrappers the CODE unit accepts: <b> for keywords and <i> for
// comments.
type Highlighter interface {
	Highlight(lang, code string) (string, error)
}

// HighlighterFunc adapts a function to the Highlighter interface.
type HighlighterFunc func(lang, code string) (string, error)

func (fn HighlighterFunc) Highlight(lang, code string) (string, error) { return fn(lang, code) }
