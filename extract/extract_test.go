package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	. "github.com/shodgson/article-go/extract"
	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
	. "github.com/shodgson/article-go/test/builder"
)

var x = New(Factory)

// convert builds a unit of kind target from the data extracted from src.
func convert(t *testing.T, src *html.Node, target model.Kind) string {
	t.Helper()
	before := model.Render(src)
	d := x.Extract(src, target)
	require.NotNil(t, d, "%s from %s", target, before)
	assert.Equal(t, before, model.Render(src), "the source is left untouched")
	n, err := Factory.Create(target, d.Content(), nil)
	require.NoError(t, err)
	return model.Render(n)
}

func TestListToDefinitionList(t *testing.T) {
	d := x.Extract(Ul(Li("a"), Li("b"), Li("c")), article.DL)
	require.NotNil(t, d)
	assert.True(t, d.Paired)
	assert.Nil(t, d.Head)
	require.Len(t, d.Body, 3)
	for _, dd := range d.Body {
		assert.True(t, Schema.Is(dd, article.DD))
	}

	assert.Equal(t, `<dl><dd>a</dd><dd>b</dd><dd>c</dd></dl>`,
		convert(t, Ul(Li("a"), Li("b"), Li("c")), article.DL))
}

func TestSelfExtraction(t *testing.T) {
	img := Img()
	for _, k := range Schema.Kinds() {
		d := x.Extract(img, k)
		require.NotNil(t, d, k)
		require.Len(t, d.All(), 1, k)
		assert.Same(t, img, d.All()[0], k)
	}
}

func TestExtractNeverPanics(t *testing.T) {
	var sources []*html.Node
	for _, k := range Schema.Kinds() {
		if n, err := Factory.Create(k, nil, nil); err == nil {
			sources = append(sources, n)
		}
	}
	sources = append(sources,
		Article(H1("T"), S1(H2("S"), P("p", Em("e")), Table(factory.TableSpec{Rows: 1, Cols: 2}))),
		Pre(Attrs{"lang": "go"}, "a\nb"),
		Ruby(factory.RubySpec{Base: "a", Reading: "b"}),
		nil,
	)
	for _, src := range sources {
		for _, k := range append(Schema.Kinds(), "NOPE") {
			assert.NotPanics(t, func() { x.Extract(src, k) })
		}
	}
}

func TestAtomicAndRules(t *testing.T) {
	toc, err := Factory.Create(article.TOC, nil, nil)
	require.NoError(t, err)
	for _, k := range Schema.Kinds() {
		assert.Nil(t, x.Extract(toc, k), k)
	}

	hr := Hr()
	assert.Nil(t, x.Extract(hr, article.P))
	assert.Nil(t, x.Extract(hr, article.UL))
	d := x.Extract(hr, article.S1)
	require.NotNil(t, d)
	assert.Equal(t, []*html.Node{hr}, d.All())

	// nothing converts into the article itself
	assert.Nil(t, x.Extract(P("x"), article.ARTICLE))
	assert.Nil(t, x.Extract(S1(H2("a"), P("b")), article.ARTICLE))

	assert.Nil(t, x.Extract(P("x"), "NOPE"))
	assert.Nil(t, x.Extract(nil, article.P))
}

func TestToLine(t *testing.T) {
	// text is normalized
	assert.Equal(t, `<p>Hello world</p>`, convert(t, H2("  Hello \n world "), article.P))
	// list items become lines
	assert.Equal(t, `<p>a<br/>b</p>`, convert(t, Ul(Li("a"), Li("b")), article.P))
	// lines are joined with a space where breaks are illegal
	assert.Equal(t, `<time>a b</time>`, convert(t, Ul(Li("a"), Li("b")), article.TIME))
	// formatting is kept
	assert.Equal(t, `<dt>a <em>b</em></dt>`, convert(t, P("a ", Em("b")), article.DT))
	// code is not normalized
	assert.Equal(t, `<p>a  b</p>`, convert(t, Pre("a  b"), article.P))

	d := x.Extract(P("  a  ", Em("b"), " "), article.TEXT)
	require.NotNil(t, d)
	require.Len(t, d.Nodes, 1)
	assert.Equal(t, "a b", d.Nodes[0].Data)
}

func TestToList(t *testing.T) {
	assert.Equal(t, `<ul><li>a<br/>b</li></ul>`, convert(t, P("a", Br(), "b"), article.UL))
	assert.Equal(t, `<ol><li>a</li><li>b</li></ol>`, convert(t, Ul(Li("a"), Li("b")), article.OL))
	assert.Equal(t, `<ul><li>a b</li><li>c d</li></ul>`,
		convert(t, Table(factory.TableSpec{Cells: [][]any{{"a", "b"}, {"c", "d"}}}), article.UL))
	assert.Equal(t, `<ol role="cascade"><li role="cascadeli"><h5 role="cascadeh">a</h5></li></ol>`,
		convert(t, Ul(Li("a")), article.CASCADE))
}

func TestToBlock(t *testing.T) {
	src := S1(H2("Intro"), P("x"), Ul(Li("y")))
	assert.Equal(t, `<blockquote><h4>Intro</h4><p>x</p><ul><li>y</li></ul></blockquote>`,
		convert(t, src, article.BLOCKQUOTE))

	// lines become paragraphs
	assert.Equal(t, `<aside><p>a</p><p>b</p></aside>`,
		convert(t, Ul(Li("a"), Li("b")), article.ASIDE))

	// code stays code where the target holds it
	assert.Equal(t, "<blockquote><pre><code>a\nb</code></pre></blockquote>",
		convert(t, Pre("a\nb"), article.BLOCKQUOTE))
}

func TestToTable(t *testing.T) {
	assert.Equal(t, `<table><tbody><tr><td>a</td></tr><tr><td>b</td></tr></tbody></table>`,
		convert(t, Ul(Li("a"), Li("b")), article.TABLE))

	assert.Equal(t, `<table><caption>T</caption><tbody><tr><td>x</td></tr></tbody></table>`,
		convert(t, Blockquote(H4("T"), P("x")), article.TABLE))

	// tables keep their row groups
	src := Table(factory.TableSpec{HeadRow: true, Caption: "c", Cells: [][]any{{"h"}, {"v"}}})
	assert.Equal(t, model.Render(src), convert(t, src, article.TABLE))
}

func TestToCode(t *testing.T) {
	assert.Equal(t, `<ol role="codelist"><li role="codeli"><code>a := 1</code></li><li role="codeli"><code>b := 2</code></li></ol>`,
		convert(t, Pre("a := 1\nb := 2"), article.CODELIST))
	assert.Equal(t, `<pre><code>a b</code></pre>`, convert(t, P("a  b"), article.CODEBLOCK))
	assert.Equal(t, "<pre><code>a\nb</code></pre>", convert(t, Ul(Li("a"), Li("b")), article.CODEBLOCK))

	// breaks start a new line
	assert.Equal(t, `<ol role="codelist"><li role="codeli"><code>a</code></li><li role="codeli"><code>b</code></li></ol>`,
		convert(t, P("a", Br(), "b"), article.CODELIST))
	assert.Equal(t, "<pre><code>a\nb</code></pre>", convert(t, P("a", Br(), "b"), article.CODEBLOCK))
}

func TestExtractAll(t *testing.T) {
	data := x.ExtractAll([]*html.Node{Hr(), P("x"), Ul(Li("y"))}, article.P)
	assert.Len(t, data, 2)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a  b\n\tc  "))
	assert.Equal(t, "\u00e9t\u00e9", Normalize("e\u0301t\u00e9"))
	assert.Equal(t, "", Normalize(" \n "))
	for _, s := range []string{"  a  b ", "é", "x"} {
		assert.Equal(t, Normalize(s), Normalize(Normalize(s)))
	}
}
