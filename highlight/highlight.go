// Package highlight colours source code for CODE units. Its output holds only
// text and two inline wrappers: <b> around keywords and <i> around comments.
package highlight

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"golang.org/x/net/html"
)

// Highlighter colours code with chroma lexers.
type Highlighter struct {
	analyse bool
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithAnalysis makes unknown languages fall back to content analysis before
// the plain-text lexer.
func WithAnalysis(on bool) Option {
	return func(h *Highlighter) { h.analyse = on }
}

// New returns a highlighter. Content analysis is on by default.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{analyse: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight returns the coloured markup of code.
func (h *Highlighter) Highlight(lang, code string) (string, error) {
	lexer := h.lexer(lang, code)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s code: %w", lang, err)
	}
	var b strings.Builder
	if err := (formatter{}).Format(&b, nil, it); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (h *Highlighter) lexer(lang, code string) chroma.Lexer {
	lexer := lexers.Get(lang)
	if lexer == nil && h.analyse {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

// formatter is a chroma formatter writing the two wrappers CODE accepts.
type formatter struct{}

var _ chroma.Formatter = formatter{}

func (formatter) Format(w io.Writer, _ *chroma.Style, it chroma.Iterator) error {
	for tok := it(); tok != chroma.EOF; tok = it() {
		if tok.Value == "" {
			continue
		}
		text := html.EscapeString(tok.Value)
		var err error
		switch {
		case tok.Type.InCategory(chroma.Keyword):
			_, err = fmt.Fprintf(w, "<b>%s</b>", text)
		case tok.Type.InCategory(chroma.Comment):
			_, err = fmt.Fprintf(w, "<i>%s</i>", text)
		default:
			_, err = io.WriteString(w, text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
