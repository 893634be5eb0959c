package model

import (
	"fmt"
	"strings"
)

// A content expression lists the kinds legal as direct children of a kind.
// It is a sequence of kind keys and group names separated by spaces or "|",
// for example "TEXT phrase embed" or "LI | CASCADELI". Repetition markers
// ("*", "+", "?") may follow a name for readability and are ignored: the
// grammar only constrains which kinds may appear, not how many.
//
// Group names are resolved and flattened eagerly when the schema is built, so
// lookups never walk groups at call time.

type tokenStream struct {
	str    string
	kinds  map[Kind]*KindSpec
	order  []Kind
	pos    int
	tokens []string
}

func newTokenStream(str string, kinds map[Kind]*KindSpec, order []Kind) *tokenStream {
	fields := strings.FieldsFunc(str, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '|', '(', ')':
			return true
		}
		return false
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimRight(f, "*+?")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return &tokenStream{
		str:    str,
		kinds:  kinds,
		order:  order,
		tokens: tokens,
	}
}

func (ts *tokenStream) next() *string {
	if ts.pos >= len(ts.tokens) {
		return nil
	}
	return &ts.tokens[ts.pos]
}

func (ts *tokenStream) err(format string, args ...interface{}) error {
	str := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s (in content expression %q)", str, ts.str)
}

// parseContent resolves a content expression into an ordered, deduplicated
// list of kinds.
func parseContent(str string, kinds map[Kind]*KindSpec, order []Kind) ([]Kind, error) {
	stream := newTokenStream(str, kinds, order)
	var result []Kind
	seen := map[Kind]bool{}
	for s := stream.next(); s != nil; s = stream.next() {
		if !isWordCharacters(*s) {
			return nil, stream.err("Unexpected token %q", *s)
		}
		resolved, err := resolveName(stream, *s)
		if err != nil {
			return nil, err
		}
		for _, k := range resolved {
			if !seen[k] {
				seen[k] = true
				result = append(result, k)
			}
		}
		stream.pos++
	}
	return result, nil
}

// resolveName looks the name up as a kind key first, then as a group. Group
// members come back in registration order.
func resolveName(stream *tokenStream, name string) ([]Kind, error) {
	if _, ok := stream.kinds[Kind(name)]; ok {
		return []Kind{Kind(name)}, nil
	}
	var result []Kind
	for _, k := range stream.order {
		for _, g := range stream.kinds[k].Groups() {
			if g == name {
				result = append(result, k)
				break
			}
		}
	}
	if len(result) == 0 {
		return nil, stream.err("No kind or group %q found", name)
	}
	return result, nil
}

func isWordCharacters(str string) bool {
	for _, c := range str {
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case c == '_', c == '-':
			// OK
		default:
			return false
		}
	}
	return true
}
