package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/shodgson/article-go/model"
	"github.com/shodgson/article-go/schema/article"
)

func TestTableInfo(t *testing.T) {
	s := article.Schema
	n := parse(t, `<table><caption>c</caption>`+
		`<thead><tr><th>a</th><th>b</th><th>c</th></tr></thead>`+
		`<tbody><tr><th>1</th><td>2</td><td>3</td></tr><tr><th>4</th><td>5</td><th>6</th></tr></tbody>`+
		`</table>`)

	info, err := s.Table(n)
	require.NoError(t, err)
	assert.NotNil(t, info.Caption)
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, 3, info.Cols)
	assert.True(t, info.HeadRow)
	assert.True(t, info.FirstColHeader)
	assert.False(t, info.LastColHeader)
	assert.Len(t, info.AllRows(), 3)

	cached, ok := s.CachedTable(n)
	assert.True(t, ok)
	assert.Same(t, info, cached)

	s.Forget(n)
	_, ok = s.CachedTable(n)
	assert.False(t, ok)
}

func TestTableInfoSingleHeaderColumn(t *testing.T) {
	n := parse(t, `<table><tbody><tr><th>a</th></tr><tr><th>b</th></tr></tbody></table>`)
	info, err := article.Schema.Table(n)
	require.NoError(t, err)
	assert.False(t, info.HeadRow)
	assert.True(t, info.FirstColHeader)
	assert.False(t, info.LastColHeader)
}

func TestTableInfoNotATable(t *testing.T) {
	_, err := article.Schema.Table(NewElement("p"))
	assert.Error(t, err)
	_, err = article.Schema.Table(nil)
	assert.Error(t, err)
}
