package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/shodgson/article-go/model"
)

func kinds(names string) []Kind {
	var ks []Kind
	for _, n := range strings.Fields(names) {
		ks = append(ks, Kind(n))
	}
	return ks
}

func valid(t *testing.T, parent, child string) {
	t.Helper()
	assert.True(t, schema.IsLegalChild(Kind(parent), Kind(child)), "%s under %s", child, parent)
}

func invalid(t *testing.T, parent, child string) {
	t.Helper()
	assert.False(t, schema.IsLegalChild(Kind(parent), Kind(child)), "%s under %s", child, parent)
}

func TestContentExpressions(t *testing.T) {
	// resolves kind names
	valid(t, "DOC", "HEADING")
	// resolves group members
	valid(t, "DOC", "P")
	valid(t, "DOC", "NOTE")
	valid(t, "DOC", "HR")
	// kinds outside the groups are not legal
	invalid(t, "DOC", "LI")
	invalid(t, "DOC", "TEXT")
	// text is a member of the inline group
	valid(t, "EM", "TEXT")
	valid(t, "EM", "IMG")
	invalid(t, "EM", "P")
	// leaves take nothing
	invalid(t, "IMG", "TEXT")
	invalid(t, "HR", "P")
	// unknown kinds are never legal
	invalid(t, "DOC", "NOPE")
	invalid(t, "NOPE", "P")
}

func TestAllowedChildrenOrder(t *testing.T) {
	// kinds come in expression order, groups in registration order, without
	// duplicates
	children, err := schema.AllowedChildren("QUOTE")
	require.NoError(t, err)
	assert.Equal(t, kinds("P NOTE QUOTE UL HR"), children)

	children, err = schema.AllowedChildren("LI")
	require.NoError(t, err)
	assert.Equal(t, kinds("TEXT EM IMG UL"), children)

	children, err = schema.AllowedChildren("IMG")
	require.NoError(t, err)
	assert.Empty(t, children)

	// the result is a copy
	children, _ = schema.AllowedChildren("UL")
	children[0] = "P"
	again, _ := schema.AllowedChildren("UL")
	assert.Equal(t, kinds("LI"), again)
}

func TestContentExpressionErrors(t *testing.T) {
	for _, expr := range []string{"NOPE", "P | NOTE", "P.x"} {
		_, err := NewSchema(&SchemaSpec{Kinds: []*KindSpec{
			{Key: "P", Tag: "p", Content: expr},
		}})
		assert.Error(t, err, expr)
	}
}

func TestContentRepetitionMarkers(t *testing.T) {
	s, err := NewSchema(&SchemaSpec{Kinds: []*KindSpec{
		{Key: "P", Tag: "p", Content: "(P | Q)* Q+ P?"},
		{Key: "Q", Tag: "q"},
	}})
	require.NoError(t, err)
	children, err := s.AllowedChildren("P")
	require.NoError(t, err)
	assert.Equal(t, kinds("P Q"), children)
}
