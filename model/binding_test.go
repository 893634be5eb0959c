package model_test

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/html"

	. "github.com/shodgson/article-go/model"
)

func TestBinding(t *testing.T) {
	b := NewBinding[string]()
	n := NewElement("p")
	other := NewElement("p")

	b.Set(n, "one")
	v, ok := b.Get(n)
	assert.True(t, ok)
	assert.Equal(t, "one", v)
	_, ok = b.Get(other)
	assert.False(t, ok)

	b.Set(n, "two")
	v, _ = b.Get(n)
	assert.Equal(t, "two", v)
	assert.Equal(t, 1, b.Len())

	b.Delete(n)
	_, ok = b.Get(n)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())

	// nil nodes are ignored
	b.Set(nil, "x")
	_, ok = b.Get(nil)
	assert.False(t, ok)
	b.Delete(nil)
	runtime.KeepAlive(other)
}

func TestBindingDropsCollectedNodes(t *testing.T) {
	b := NewBinding[int]()
	func() {
		for i := 0; i < 10; i++ {
			b.Set(&html.Node{Type: html.ElementNode, Data: "p"}, i)
		}
	}()
	kept := NewElement("p")
	b.Set(kept, 42)

	assert.Eventually(t, func() bool {
		runtime.GC()
		return b.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)
	v, ok := b.Get(kept)
	assert.True(t, ok)
	assert.Equal(t, 42, v)
}
