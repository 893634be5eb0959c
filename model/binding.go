package model

import (
	"runtime"
	"sync"
	"weak"

	"golang.org/x/net/html"
)

// Binding is a side table associating a value with a live node without
// keeping the node alive. An entry disappears when its node is garbage
// collected, or earlier through Delete.
//
// Cleanups run on a runtime goroutine, hence the mutex.
type Binding[V any] struct {
	mu sync.Mutex
	m  map[weak.Pointer[html.Node]]V
}

// NewBinding creates an empty side table.
func NewBinding[V any]() *Binding[V] {
	return &Binding[V]{m: make(map[weak.Pointer[html.Node]]V)}
}

// Set associates v with n.
func (b *Binding[V]) Set(n *html.Node, v V) {
	if n == nil {
		return
	}
	key := weak.Make(n)
	b.mu.Lock()
	_, exists := b.m[key]
	b.m[key] = v
	b.mu.Unlock()
	if !exists {
		runtime.AddCleanup(n, b.evict, key)
	}
}

// Get returns the value associated with n.
func (b *Binding[V]) Get(n *html.Node) (V, bool) {
	var zero V
	if n == nil {
		return zero, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.m[weak.Make(n)]
	return v, ok
}

// Delete drops the association of n, if any.
func (b *Binding[V]) Delete(n *html.Node) {
	if n == nil {
		return
	}
	b.evict(weak.Make(n))
}

// Len returns the number of live associations.
func (b *Binding[V]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.m)
}

func (b *Binding[V]) evict(key weak.Pointer[html.Node]) {
	b.mu.Lock()
	delete(b.m, key)
	b.mu.Unlock()
}
