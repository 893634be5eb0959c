// Package export writes the serialized form of units: their markup, with
// the role attributes that let the kinds be derived again on load.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/minify/v2"
	mhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
)

// Options control the serialized form.
type Options struct {
	// Minify collapses insignificant whitespace. End tags, quotes and the
	// values of default attributes are kept so that the output parses back
	// into the same units.
	Minify bool
}

var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &mhtml.Minifier{
		KeepDefaultAttrVals: true,
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
	})
	return m
}

// HTML writes nodes to w.
func HTML(w io.Writer, nodes []*html.Node, opts Options) error {
	if !opts.Minify {
		for _, n := range nodes {
			if err := html.Render(w, n); err != nil {
				return fmt.Errorf("rendering %s: %w", n.Data, err)
			}
		}
		return nil
	}
	var buf bytes.Buffer
	if err := HTML(&buf, nodes, Options{}); err != nil {
		return err
	}
	if err := minifier.Minify("text/html", w, &buf); err != nil {
		return fmt.Errorf("minifying: %w", err)
	}
	return nil
}

// String returns the serialized form of nodes.
func String(nodes []*html.Node, opts Options) (string, error) {
	var sb strings.Builder
	if err := HTML(&sb, nodes, opts); err != nil {
		return "", err
	}
	return sb.String(), nil
}
