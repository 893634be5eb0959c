package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/shodgson/article-go/model"
)

func TestCheck(t *testing.T) {
	// valid content
	assert.NoError(t, schema.Check(parse(t, `<ul><li>one <em>two</em><ul><li>three</li></ul></li></ul>`)))
	assert.NoError(t, schema.Check(parse(t, `<blockquote><p>a</p><!-- c --><hr></blockquote>`)))

	// illegal children are reported with their path
	err := schema.Check(parse(t, `<ul><li>one</li><li><p>two</p></li></ul>`))
	assert.ErrorIs(t, err, ErrIllegalChild)
	assert.EqualError(t, err, "ul/1/0: P is not a legal child of LI")

	// text where none is allowed
	err = schema.Check(parse(t, `<ul>one<li>two</li></ul>`))
	assert.ErrorIs(t, err, ErrIllegalChild)

	// every violation is reported
	err = schema.Check(parse(t, `<blockquote><span>x</span><li>y</li></blockquote>`))
	assert.ErrorIs(t, err, ErrUnresolvableKind)
	assert.ErrorIs(t, err, ErrIllegalChild)
	assert.Contains(t, err.Error(), "blockquote/0:")
	assert.Contains(t, err.Error(), "blockquote/1:")
}
