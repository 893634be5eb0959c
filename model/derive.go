package model

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

type tagRole struct {
	tag  string
	role string
}

// derivationIndex is the reverse index (tag name, role) -> kind, built once
// from the schema table.
type derivationIndex struct {
	exact    map[tagRole]Kind
	defaults map[string]Kind
}

func buildDerivationIndex(order []Kind, specs map[Kind]*KindSpec) (derivationIndex, error) {
	idx := derivationIndex{
		exact:    make(map[tagRole]Kind),
		defaults: make(map[string]Kind),
	}
	for _, k := range order {
		ks := specs[k]
		if ks.Tag == TextTag {
			continue
		}
		if ks.Role {
			key := tagRole{tag: ks.Tag, role: k.Role()}
			if other, dup := idx.exact[key]; dup {
				return idx, fmt.Errorf("kinds %s and %s both map to <%s role=%q>", other, k, key.tag, key.role)
			}
			idx.exact[key] = k
		}
		if !ks.Role || ks.Default {
			if other, dup := idx.defaults[ks.Tag]; dup {
				return idx, fmt.Errorf("kinds %s and %s are both the default for <%s>", other, k, ks.Tag)
			}
			idx.defaults[ks.Tag] = k
		}
	}
	return idx, nil
}

// Derive recovers a kind from a tag name and an optional role attribute: an
// exact (tag, role) match wins, otherwise the tag's default kind applies.
func (s *Schema) Derive(tag, role string) (Kind, error) {
	tag = strings.ToLower(tag)
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "" {
		if k, ok := s.index.exact[tagRole{tag: tag, role: role}]; ok {
			return k, nil
		}
	}
	if k, ok := s.index.defaults[tag]; ok {
		return k, nil
	}
	return "", &UnresolvableKindError{Tag: tag, Role: role}
}

// KindOf returns the kind of a node. Elements created by a factory carry
// their kind; for others (pasted or parsed markup) the kind is derived from
// tag and role, then cached on the element.
func (s *Schema) KindOf(n *html.Node) (Kind, error) {
	if n == nil {
		return "", &UnresolvableKindError{Tag: "<nil>"}
	}
	switch n.Type {
	case html.TextNode:
		if s.text == "" {
			return "", &UnresolvableKindError{Tag: TextTag}
		}
		return s.text, nil
	case html.ElementNode:
	default:
		return "", &UnresolvableKindError{Tag: nodeTypeName(n.Type)}
	}
	if k, ok := s.tags.Get(n); ok {
		return k, nil
	}
	k, err := s.Derive(n.Data, Attr(n, "role"))
	if err != nil {
		slog.Error("Unresolvable unit", "tag", n.Data, "role", Attr(n, "role"), "err", err)
		return "", err
	}
	s.tags.Set(n, k)
	return k, nil
}

// Is reports whether n is a unit of kind k.
func (s *Schema) Is(n *html.Node, k Kind) bool {
	nk, err := s.KindOf(n)
	return err == nil && nk == k
}

// Tag associates a kind with an element.
func (s *Schema) Tag(n *html.Node, k Kind) error {
	if _, err := s.Spec(k); err != nil {
		return err
	}
	s.tags.Set(n, k)
	return nil
}

// Tagged reports whether the element carries a live kind association, as
// opposed to one that would have to be derived.
func (s *Schema) Tagged(n *html.Node) bool {
	_, ok := s.tags.Get(n)
	return ok
}

// Forget drops the kind and table associations of n and its descendants.
// Hosts call it when a unit is detached for good.
func (s *Schema) Forget(n *html.Node) {
	Walk(n, func(c *html.Node) bool {
		s.tags.Delete(c)
		s.tables.Delete(c)
		return true
	})
}

// NeedsRole reports whether units of kind k carry a role attribute.
func (s *Schema) NeedsRole(k Kind) bool {
	ks, ok := s.specs[k]
	return ok && ks.Role
}

// Movable reports whether units of kind k may be relocated.
func (s *Schema) Movable(k Kind) bool {
	ks, ok := s.specs[k]
	return ok && !ks.Flags.Has(Fixed)
}

func nodeTypeName(t html.NodeType) string {
	switch t {
	case html.DocumentNode:
		return "#document"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return "#doctype"
	case html.RawNode:
		return "#raw"
	}
	return "#error"
}
