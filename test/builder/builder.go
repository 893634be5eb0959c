// Package builder creates article units tersely in tests. Builders panic
// when the factory rejects their content.
package builder

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

// Attrs are the options of a unit, given as the first builder argument.
type Attrs = factory.Options

// NodeBuilder creates a unit from its options and content: strings, nodes
// and factory content values.
type NodeBuilder func(args ...interface{}) *html.Node

var (
	Schema  = article.Schema
	Factory = factory.New(article.Schema)
)

func takeAttrs(attrs factory.Options, args []interface{}) (factory.Options, []interface{}) {
	res := attrs.Clone()
	if len(args) > 0 {
		if a, ok := args[0].(factory.Options); ok {
			for k, v := range a {
				res[k] = v
			}
			args = args[1:]
		}
	}
	return res, args
}

func content(args []interface{}) any {
	switch len(args) {
	case 0:
		return nil
	case 1:
		switch a := args[0].(type) {
		case string, factory.Pair, factory.TableSpec, factory.RubySpec, factory.HTML:
			return a
		}
	}
	var res []any
	for _, a := range args {
		if s, ok := a.(string); ok {
			a = model.NewText(s)
		}
		res = append(res, a)
	}
	return res
}

// Block creates a builder for a kind with default options.
func Block(kind model.Kind, attrs factory.Options) NodeBuilder {
	return func(args ...interface{}) *html.Node {
		opts, rest := takeAttrs(attrs, args)
		node, err := Factory.Create(kind, content(rest), opts)
		if err != nil {
			panic(err)
		}
		return node
	}
}

// Parse parses trusted markup in the context of a fresh ARTICLE and returns
// it.
func Parse(markup string) *html.Node {
	node, err := Factory.Create(article.ARTICLE, factory.HTML(markup), nil)
	if err != nil {
		panic(err)
	}
	return node
}

// Render renders the children of n, with no formatting whitespace.
func Render(n *html.Node) string {
	return strings.TrimSpace(model.RenderChildren(n))
}

var (
	Article    = Block(article.ARTICLE, nil)
	S1         = Block(article.S1, nil)
	S2         = Block(article.S2, nil)
	P          = Block(article.P, nil)
	Note       = Block(article.NOTE, nil)
	Blockquote = Block(article.BLOCKQUOTE, nil)
	Aside      = Block(article.ASIDE, nil)
	Pre        = Block(article.CODEBLOCK, nil)
	CodeList   = Block(article.CODELIST, nil)
	H1         = Block(article.H1, nil)
	H2         = Block(article.H2, nil)
	H3         = Block(article.H3, nil)
	H4         = Block(article.H4, nil)
	Li         = Block(article.LI, nil)
	Ul         = Block(article.UL, nil)
	Ol         = Block(article.OL, nil)
	Dl         = Block(article.DL, nil)
	Dt         = Block(article.DT, nil)
	Dd         = Block(article.DD, nil)
	Table      = Block(article.TABLE, nil)
	Tr         = Block(article.TR, nil)
	Td         = Block(article.TD, nil)
	Th         = Block(article.TH, nil)
	Figure     = Block(article.FIGURE, nil)
	Br         = Block(article.BR, nil)
	Img        = Block(article.IMG, factory.Options{"src": "img.png"})
	Hr         = Block(article.HR, nil)
	A          = Block(article.A, factory.Options{"href": "foo"})
	Em         = Block(article.EM, nil)
	Strong     = Block(article.STRONG, nil)
	Code       = Block(article.CODE, nil)
	Del        = Block(article.DEL, nil)
	Ruby       = Block(article.RUBY, nil)
	Time       = Block(article.TIME, nil)
)
