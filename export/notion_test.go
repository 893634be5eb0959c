package export_test

import (
	"testing"

	"github.com/dstotijn/go-notion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/export"
	"github.com/shodgson/article-go/factory"
	. "github.com/shodgson/article-go/test/builder"
)

func notionPage(t *testing.T, doc *html.Node) []notion.Block {
	t.Helper()
	return export.DefaultNotionSerializer.SerializePage([]*html.Node{doc})
}

func plain(text []notion.RichText) string {
	var s string
	for _, rt := range text {
		s += rt.PlainText
	}
	return s
}

func TestNotionParagraph(t *testing.T) {
	blocks := notionPage(t, Article(P("hello")))
	require.Len(t, blocks, 1)
	p, ok := blocks[0].(*notion.ParagraphBlock)
	require.True(t, ok)
	require.Len(t, p.RichText, 1)
	assert.Equal(t, "hello", p.RichText[0].PlainText)
	assert.Equal(t, "hello", p.RichText[0].Text.Content)
	assert.Nil(t, p.RichText[0].Annotations)
}

func TestNotionLineBreak(t *testing.T) {
	blocks := notionPage(t, Article(P("hi", Br(), "there")))
	require.Len(t, blocks, 1)
	p := blocks[0].(*notion.ParagraphBlock)
	require.Len(t, p.RichText, 1)
	assert.Equal(t, "hi\nthere", p.RichText[0].PlainText)
}

func TestNotionMarks(t *testing.T) {
	blocks := notionPage(t, Article(P("one", Strong("two", Em("three")), A("four"))))
	require.Len(t, blocks, 1)
	text := blocks[0].(*notion.ParagraphBlock).RichText
	require.Len(t, text, 4)

	assert.Nil(t, text[0].Annotations)
	require.NotNil(t, text[1].Annotations)
	assert.True(t, text[1].Annotations.Bold)
	assert.False(t, text[1].Annotations.Italic)
	require.NotNil(t, text[2].Annotations)
	assert.True(t, text[2].Annotations.Bold)
	assert.True(t, text[2].Annotations.Italic)
	require.NotNil(t, text[3].Text.Link)
	assert.Equal(t, "foo", text[3].Text.Link.URL)
	assert.Equal(t, "onetwothreefour", plain(text))
}

func TestNotionSectionsFlatten(t *testing.T) {
	blocks := notionPage(t, Article(H1("Title"), S1(H2("One"), P("text"), S2(H3("Sub")))))
	require.Len(t, blocks, 4)
	assert.IsType(t, &notion.Heading1Block{}, blocks[0])
	assert.IsType(t, &notion.Heading2Block{}, blocks[1])
	assert.IsType(t, &notion.ParagraphBlock{}, blocks[2])
	assert.IsType(t, &notion.Heading3Block{}, blocks[3])

	deep := export.DefaultNotionSerializer.SerializeNode(H4("Deep"))
	require.Len(t, deep, 1)
	assert.IsType(t, &notion.Heading3Block{}, deep[0])
}

func TestNotionLists(t *testing.T) {
	blocks := notionPage(t, Article(Ul(Li("a", Ol(Li("b"))), Li("c"))))
	require.Len(t, blocks, 2)
	first, ok := blocks[0].(*notion.BulletedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "a", plain(first.RichText))
	require.Len(t, first.Children, 1)
	nested, ok := first.Children[0].(*notion.NumberedListItemBlock)
	require.True(t, ok)
	assert.Equal(t, "b", plain(nested.RichText))
}

func TestNotionQuote(t *testing.T) {
	blocks := notionPage(t, Article(Blockquote(P("said"), P("more"))))
	require.Len(t, blocks, 1)
	q := blocks[0].(*notion.QuoteBlock)
	assert.Equal(t, "said", plain(q.RichText))
	require.Len(t, q.Children, 1)
}

func TestNotionCode(t *testing.T) {
	blocks := notionPage(t, Article(Pre(Attrs{"lang": "go"}, "x := 1"), Pre("plain")))
	require.Len(t, blocks, 2)
	code := blocks[0].(*notion.CodeBlock)
	require.NotNil(t, code.Language)
	assert.Equal(t, "go", *code.Language)
	assert.Equal(t, "x := 1", plain(code.RichText))
	assert.Equal(t, "plain text", *blocks[1].(*notion.CodeBlock).Language)
}

func TestNotionTable(t *testing.T) {
	doc := Article(Table(factory.TableSpec{HeadRow: true, Cells: [][]any{{"a", "b"}, {"1", "2"}}}))
	blocks := notionPage(t, doc)
	require.Len(t, blocks, 1)
	table := blocks[0].(*notion.TableBlock)
	assert.Equal(t, 2, table.TableWidth)
	assert.True(t, table.HasColumnHeader)
	require.Len(t, table.Children, 2)
	row := table.Children[1].(*notion.TableRowBlock)
	assert.Equal(t, "2", plain(row.Cells[1]))
}

func TestNotionMedia(t *testing.T) {
	blocks := notionPage(t, Article(Hr(), Figure(Img(Attrs{"alt": "x"}))))
	require.Len(t, blocks, 2)
	assert.IsType(t, &notion.DividerBlock{}, blocks[0])
	img := blocks[1].(*notion.ImageBlock)
	require.NotNil(t, img.External)
	assert.Equal(t, "img.png", img.External.URL)
	assert.Equal(t, "x", plain(img.Caption))
}
