package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/schema/article"
	. "github.com/shodgson/article-go/test/builder"
)

func TestMarkdown(t *testing.T) {
	parser := NewParser(Factory)

	parse := func(text string, doc *html.Node) {
		actual, err := parser.Parse([]byte(text))
		require.NoError(t, err)
		assert.Equal(t, Render(doc), Render(actual))
	}

	serialize := func(doc *html.Node, text string) {
		assert.Equal(t, text, DefaultSerializer.Serialize(doc))
	}

	same := func(text string, doc *html.Node) {
		parse(text, doc)
		serialize(doc, text)
	}

	// parses a paragraph
	same("hello!",
		Article(P("hello!")))

	// parses headings into sections
	same("# one\n\n## two\n\nthree",
		Article(H1("one"), S1(H2("two"), P("three"))))

	// nests sections by heading level
	same("# Title\n\n## One\n\ntext\n\n### Sub\n\nmore\n\n## Two",
		Article(H1("Title"),
			S1(H2("One"), P("text"), S2(H3("Sub"), P("more"))),
			S1(H2("Two"))))

	// parses a blockquote
	same("> once\n\n> > twice",
		Article(Blockquote(P("once")), Blockquote(Blockquote(P("twice")))))

	// parses a bullet list
	same("* foo\n\n  * bar\n\n  * baz\n\n* quux",
		Article(Ul(Li("foo", Ul(Li("bar"), Li("baz"))), Li("quux"))))

	// parses an ordered list
	same("1. Hello\n\n2. Goodbye\n\n3. Nest\n\n   1. Hey\n\n   2. Aye",
		Article(Ol(Li("Hello"), Li("Goodbye"), Li("Nest", Ol(Li("Hey"), Li("Aye"))))))

	// preserves ordered list start number
	same("3. Foo\n\n4. Bar",
		Article(Ol(Attrs{"start": "3"}, Li("Foo"), Li("Bar"))))

	// parses a code block
	same("Some code:\n\n```\nHere it is\n```\n\nPara",
		Article(P("Some code:"), Pre("Here it is"), P("Para")))

	// parses a fenced code block with info string
	same("foo\n\n```javascript\n1\n```",
		Article(P("foo"), Pre(Attrs{"lang": "javascript"}, "1")))

	// parses inline formatting
	same("Hello. Some *em* text, some **strong** text, and some `code`",
		Article(P("Hello. Some ", Em("em"), " text, some ", Strong("strong"), " text, and some ", Code("code"))))

	// parses nested inline formatting
	same("This is **strong *emphasized text with `code` in* it**",
		Article(P("This is ", Strong("strong ", Em("emphasized text with ", Code("code"), " in"), " it"))))

	// parses emphasis inside links
	same("[link *foo **bar** `#`*](foo)",
		Article(P(A("link ", Em("foo ", Strong("bar"), " ", Code("#"))))))

	// parses code containing backticks
	same("``` one backtick: ` two backticks: `` ```",
		Article(P(Code("one backtick: ` two backticks: ``"))))

	// serializes code containing only whitespace
	serialize(Article(P("Three spaces: ", Code("   "))),
		"Three spaces: `   `")

	// parses hard breaks
	same("foo\\\nbar", Article(P("foo", Br(), "bar")))
	same("*foo\\\nbar*", Article(P(Em("foo", Br(), "bar"))))

	// parses links
	same("My [link](foo) goes to foo",
		Article(P("My ", A("link"), " goes to foo")))

	// parses urls
	same("Link to <https://example.com>",
		Article(P("Link to ", A(Attrs{"href": "https://example.com"}, "https://example.com"))))

	// correctly serializes relative urls
	same("[foo.html](foo.html)",
		Article(P(A(Attrs{"href": "foo.html"}, "foo.html"))))

	// doesn't escape underscores in link
	same("[link](http://foo.com/a_b_c)",
		Article(P(A(Attrs{"href": "http://foo.com/a_b_c"}, "link"))))

	// drops formatting that cannot hold a link
	parse("**[link](foo) is bold**",
		Article(P(A("link"), " is bold")))

	// parses an image
	same("Here's an image: ![x](img.png)",
		Article(P("Here's an image: ", Img(Attrs{"alt": "x"}))))

	// parses a horizontal rule
	same("one\n\n---\n\ntwo",
		Article(P("one"), Hr(), P("two")))

	// parses strikethrough
	same("some ~~gone~~ text",
		Article(P("some ", Del("gone"), " text")))

	// parses a table
	same("| a | b |\n| --- | --- |\n| 1 | 2 |",
		Article(Table(factory.TableSpec{HeadRow: true, Cells: [][]any{{"a", "b"}, {"1", "2"}}})))

	// parses a definition list
	same("Apple\n: Pomaceous fruit",
		Article(Dl(Dt("Apple"), Dd("Pomaceous fruit"))))

	// pastes HTML blocks
	parse("<aside><p>aside</p></aside>",
		Article(Aside(P("aside"))))
}

func TestSerializeArticle(t *testing.T) {
	doc := Article(
		H1("Title"),
		S1(H2("Intro"), Note("A note"), Dl(Dt("term"), Dd("one"), Dd("two"))),
	)
	assert.Equal(t, "# Title\n\n## Intro\n\nA note\n\nterm\n: one\n: two", DefaultSerializer.Serialize(doc))
}

func TestSerializeEscapes(t *testing.T) {
	doc := Article(P("* not a list"), P("1. not a list either"), P("x _under_ and *stars*"))
	assert.Equal(t, "\\* not a list\n\n1\\. not a list either\n\nx \\_under\\_ and \\*stars\\*", DefaultSerializer.Serialize(doc))
}

func TestSerializeCodeList(t *testing.T) {
	cl, err := Factory.Create(article.CODELIST, "a := 1\nb := 2", factory.Options{"lang": "go"})
	require.NoError(t, err)
	doc := Article(cl)
	assert.Equal(t, "```go\na := 1\nb := 2\n```", DefaultSerializer.Serialize(doc))
}

func TestSerializeTightLists(t *testing.T) {
	doc := Article(Ul(Li("a"), Li("b")))
	out := DefaultSerializer.Serialize(doc, map[string]interface{}{"tightLists": true})
	assert.Equal(t, "* a\n* b", out)
}
