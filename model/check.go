package model

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// Check validates the content of a subtree against the grammar: every
// element must resolve to a kind and every child must be legal in its
// parent. It reports every violation, joined, each prefixed with the path of
// the offending node.
func (s *Schema) Check(n *html.Node) error {
	var errs []error
	var check func(n *html.Node, path string)
	check = func(n *html.Node, path string) {
		k, err := s.KindOf(n)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return
		}
		for i, c := range Children(n) {
			if c.Type == html.CommentNode {
				continue
			}
			cpath := fmt.Sprintf("%s/%d", path, i)
			ck, err := s.KindOf(c)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", cpath, err))
				continue
			}
			if !s.IsLegalChild(k, ck) {
				errs = append(errs, fmt.Errorf("%s: %w", cpath, &IllegalChildError{Parent: k, Child: ck}))
			}
			if c.Type == html.ElementNode {
				check(c, cpath)
			}
		}
	}
	check(n, n.Data)
	return errors.Join(errs...)
}
