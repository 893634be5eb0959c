package factory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/factory"
	"github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
	. "github.com/shodgson/article-go/test/builder"
)

func create(t *testing.T, kind model.Kind, content any, opts factory.Options) *html.Node {
	t.Helper()
	n, err := Factory.Create(kind, content, opts)
	require.NoError(t, err)
	return n
}

func TestCreate(t *testing.T) {
	same := func(n *html.Node, expected string) {
		t.Helper()
		assert.Equal(t, expected, model.Render(n))
	}

	// wraps strings in the item kind
	same(create(t, article.UL, []string{"a", "b"}, nil),
		`<ul><li>a</li><li>b</li></ul>`)

	// combines date and time into the datetime
	same(create(t, article.TIME, "", factory.Options{"date": "2024-01-01", "time": "10:00"}),
		`<time datetime="2024-01-01 10:00">2024-01-01 10:00</time>`)
	same(create(t, article.TIME, "noon", factory.Options{"time": "12:00"}),
		`<time datetime="12:00">noon</time>`)

	// writes the role of role-bearing kinds
	same(create(t, article.NOTE, "x", nil), `<p role="note">x</p>`)
	same(create(t, article.P, "x", factory.Options{"role": "note", "id": "a", "nope": "b"}), `<p id="a">x</p>`)

	// wraps runs the unit cannot hold in one item
	same(create(t, article.UL, []*html.Node{model.NewText("a "), Em("b"), Li("c")}, nil),
		`<ul><li>a <em>b</em></li><li>c</li></ul>`)

	// generates the heading of sealed kinds
	same(create(t, article.CASCADELI, nil, nil),
		`<li role="cascadeli"><h5 role="cascadeh"></h5></li>`)

	// fills heading and body from a pair
	same(create(t, article.S1, factory.Pair{Head: "Intro", Body: "text"}, nil),
		`<section role="s1"><h2>Intro</h2><p>text</p></section>`)
	same(create(t, article.BLOCKQUOTE, factory.Pair{Body: []string{"a", "b"}}, nil),
		`<blockquote><p>a</p><p>b</p></blockquote>`)

	// parses trusted markup in the context of the unit
	same(create(t, article.UL, factory.HTML("<li>a</li>\n<li>b</li>"), nil),
		`<ul><li>a</li><li>b</li></ul>`)

	// text nodes
	same(create(t, article.TEXT, "plain", nil), `plain`)
}

func TestCreateErrors(t *testing.T) {
	_, err := Factory.Create("NOPE", nil, nil)
	assert.ErrorIs(t, err, model.ErrUnknownKind)

	// nothing is moved when a child is illegal
	p := P("x")
	holder := Blockquote(p)
	_, err = Factory.Create(article.UL, []*html.Node{Li("a"), p}, nil)
	var illegal *model.IllegalChildError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, article.UL, illegal.Parent)
	assert.Equal(t, article.P, illegal.Child)
	assert.Same(t, holder, p.Parent)

	// nodes taken before the failure go back where they were
	li := Li("a")
	list := Ul(Li("b"), li, Li("c"))
	_, err = Factory.Create(article.OL, []any{li, P("x")}, nil)
	assert.ErrorIs(t, err, model.ErrIllegalChild)
	assert.Same(t, list, li.Parent)
	assert.Equal(t, `<ul><li>b</li><li>a</li><li>c</li></ul>`, model.Render(list))

	h := H4("t")
	quote := Blockquote(h, P("x"))
	_, err = Factory.Create(article.ASIDE, factory.Pair{Head: h, Body: []*html.Node{Li("y")}}, nil)
	assert.ErrorIs(t, err, model.ErrIllegalChild)
	assert.Same(t, quote, h.Parent)
	assert.Equal(t, `<blockquote><h4>t</h4><p>x</p></blockquote>`, model.Render(quote))

	_, err = Factory.Create(article.HR, "x", nil)
	assert.ErrorIs(t, err, model.ErrIllegalChild)

	_, err = Factory.Create(article.P, 42, nil)
	assert.Error(t, err)

	_, err = Factory.Create(article.TEXT, P("x"), nil)
	assert.Error(t, err)
}

func TestCreateTable(t *testing.T) {
	n := create(t, article.TABLE, factory.TableSpec{Rows: 2, Cols: 2, HeadRow: true, Caption: "c"}, factory.Options{"border": "1"})
	assert.Equal(t, `<table border="1"><caption>c</caption>`+
		`<thead><tr><th></th><th></th></tr></thead>`+
		`<tbody><tr><td></td><td></td></tr><tr><td></td><td></td></tr></tbody></table>`, model.Render(n))

	n = create(t, article.TABLE, factory.TableSpec{Cells: [][]any{{"a"}, {"b", "c"}}}, nil)
	assert.Equal(t, `<table><tbody><tr><td>a</td><td></td></tr><tr><td>b</td><td>c</td></tr></tbody></table>`, model.Render(n))

	_, err := Factory.Create(article.TABLE, factory.TableSpec{}, nil)
	assert.Error(t, err)
}

func TestCreateRuby(t *testing.T) {
	n := create(t, article.RUBY, factory.RubySpec{Base: "漢", Reading: "kan", Open: "(", Close: ")"}, nil)
	assert.Equal(t, `<ruby role="ruby"><rb>漢</rb><rp>(</rp><rt>kan</rt><rp>)</rp></ruby>`, model.Render(n))

	n = create(t, article.RUBY, "字", nil)
	assert.Equal(t, `<ruby role="ruby"><rb>字</rb><rt></rt></ruby>`, model.Render(n))
}

func TestCreatePicture(t *testing.T) {
	sources := []factory.Options{{"srcset": "a.webp", "type": "image/webp"}}
	n := create(t, article.PICTURE, sources, factory.Options{"src": "a.png", "alt": "A"})
	assert.Equal(t, `<picture role="picture"><source srcset="a.webp" type="image/webp"/><img alt="A" src="a.png"/></picture>`, model.Render(n))

	// the fallback image always comes last
	img := Img()
	n = create(t, article.PICTURE, []*html.Node{img, create(t, article.SOURCE, nil, factory.Options{"srcset": "b.webp"})}, nil)
	assert.Same(t, img, n.LastChild)
}

func TestCreateCode(t *testing.T) {
	n := create(t, article.CODELIST, "a\nb\n", nil)
	assert.Equal(t, `<ol role="codelist"><li role="codeli"><code>a</code></li><li role="codeli"><code>b</code></li></ol>`, model.Render(n))

	bold := factory.HighlighterFunc(func(lang, code string) (string, error) {
		return "<b>" + code + "</b>", nil
	})
	f := factory.New(article.Schema, factory.WithHighlighter(bold))
	// line break text between lines is kept
	lines := []*html.Node{model.NewText("a"), model.NewText("\n"), model.NewText("b")}
	n = create(t, article.CODEBLOCK, lines, nil)
	assert.Equal(t, "<pre><code>a\nb</code></pre>", model.Render(n))

	n, err := f.Create(article.CODEBLOCK, "if", factory.Options{"lang": "go"})
	require.NoError(t, err)
	assert.Equal(t, `<pre lang="go"><code lang="go"><b>if</b></code></pre>`, model.Render(n))

	// without a language, code stays plain
	n, err = f.Create(article.CODEBLOCK, "if", nil)
	require.NoError(t, err)
	assert.Equal(t, `<pre><code>if</code></pre>`, model.Render(n))

	failing := factory.HighlighterFunc(func(lang, code string) (string, error) {
		return "", errors.New("boom")
	})
	f = factory.New(article.Schema, factory.WithHighlighter(failing))
	n, err = f.Create(article.CODE, "x < y", factory.Options{"lang": "go"})
	require.NoError(t, err)
	assert.Equal(t, `<code lang="go">x &lt; y</code>`, model.Render(n))
}

func TestClone(t *testing.T) {
	src := Ul(Li("a", Em("b")))
	dst := Factory.Clone(src)
	assert.NotSame(t, src, dst)
	assert.Equal(t, model.Render(src), model.Render(dst))

	assert.True(t, Schema.Tagged(dst))
	li := model.FirstElement(dst)
	assert.True(t, Schema.Tagged(li))
	assert.True(t, Schema.Is(li, article.LI))
	assert.True(t, Schema.Is(li.LastChild, article.EM))

	// live kinds carry over, even when they differ from the derived ones
	p := P("x")
	require.NoError(t, Schema.Tag(p, article.NOTE))
	assert.True(t, Schema.Is(Factory.Clone(p), article.NOTE))

	all := Factory.CloneAll([]*html.Node{src, p})
	assert.Len(t, all, 2)
}

func TestFillFromHTML(t *testing.T) {
	doc := Article()
	inserted, err := Factory.FillFromHTML(doc, `<p onclick="x()">a<script>bad()</script></p><section role="s1"><h2>t</h2></section>`)
	require.NoError(t, err)
	assert.Len(t, inserted, 2)
	assert.Equal(t, `<p>a</p><section role="s1"><h2>t</h2></section>`, Render(doc))
	assert.True(t, Schema.Is(inserted[1], article.S1))

	// strips tags of no kind, keeping their text
	p := P()
	_, err = Factory.FillFromHTML(p, `<font>x</font> <em>y</em>`)
	require.NoError(t, err)
	assert.Equal(t, `x <em>y</em>`, Render(p))

	// inserts nothing when a node is illegal
	ul := Ul(Li("a"))
	_, err = Factory.FillFromHTML(ul, `<li>b</li><p>c</p>`)
	assert.ErrorIs(t, err, model.ErrIllegalChild)
	assert.Equal(t, `<li>a</li>`, Render(ul))

	// nested content is checked too
	quote := Blockquote()
	_, err = Factory.FillFromHTML(quote, `<ul><p>x</p></ul>`)
	assert.ErrorIs(t, err, model.ErrIllegalChild)
	assert.Nil(t, quote.FirstChild)

	// bare annotation tags survive sanitizing
	p = P()
	_, err = Factory.FillFromHTML(p, `<ruby role="ruby"><rb>a</rb><rt>b</rt></ruby>`)
	require.NoError(t, err)
	assert.Equal(t, `<ruby role="ruby"><rb>a</rb><rt>b</rt></ruby>`, Render(p))
	assert.NoError(t, Schema.Check(p))

	// without sanitizing, unresolvable tags fail
	raw := factory.New(article.Schema, factory.WithSanitizer(false))
	_, err = raw.FillFromHTML(P(), `<span>x</span>`)
	assert.ErrorIs(t, err, model.ErrUnresolvableKind)
}

func TestParse(t *testing.T) {
	nodes, err := Factory.Parse("<!-- c --><p role=\"note\">x</p>\n<ul>\n<li>a</li>\n</ul>")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.True(t, Schema.Is(nodes[0], article.NOTE))
	assert.Equal(t, `<ul><li>a</li></ul>`, model.Render(nodes[1]))
}

func TestTableOfContents(t *testing.T) {
	doc := Article(H1("T"), S1(H2("One"), S2(H3("Sub"))), S1(H2("Two  words")))
	toc, err := Factory.TableOfContents(doc)
	require.NoError(t, err)
	assert.Equal(t, `<nav role="toc"><ol role="cascade">`+
		`<li role="cascadeli"><h5 role="cascadeh">One</h5><ol role="cascade">`+
		`<li role="cascadeli"><h5 role="cascadeh">Sub</h5></li></ol></li>`+
		`<li role="cascadeli"><h5 role="cascadeh">Two words</h5></li>`+
		`</ol></nav>`, model.Render(toc))

	empty, err := Factory.Create(article.TOC, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `<nav role="toc"><ol role="cascade"></ol></nav>`, model.Render(empty))
}
