package model

import (
	"fmt"
	"strings"
)

// TextTag is the tag of the text-node pseudo-kind.
const TextTag = "#text"

// KindSpec describes one kind of unit. Schemas are declared as tables of
// kind specs (see package schema/article).
type KindSpec struct {
	// The kind key, e.g. "P" or "CASCADELI".
	Key Kind `json:"key"`
	// The element tag name. TextTag registers the text-node pseudo-kind.
	Tag string `json:"tag"`
	// When set, units of this kind carry role="<lower-cased key>" so the kind
	// can be recovered from serialized HTML. Required for sealed kinds and for
	// kinds sharing a tag with another kind.
	Role bool `json:"role,omitempty"`
	// Marks the kind used for a tag seen without a matching role. A kind that
	// declares no role is always the default for its tag.
	Default bool `json:"default,omitempty"`
	// Structural categories.
	Flags Flags `json:"flags"`
	// Content expression of the legal direct children. Empty means leaf.
	Content string `json:"content,omitempty"`
	// Space-separated group names the kind belongs to.
	Group string `json:"group,omitempty"`
	// Coarser compatibility tag used when exact-kind conversion is not
	// possible, e.g. "list", "smallblock", "cell".
	Compat string `json:"compat,omitempty"`
	// Optional leading heading kind. Kinds with a head receive
	// [heading, body] pairs on extraction.
	Head Kind `json:"head,omitempty"`
	// Kind a bare string is wrapped in when the unit does not take text.
	Item Kind `json:"item,omitempty"`
	// Recognized option keys written as attributes.
	Attrs []string `json:"attrs,omitempty"`
	// The unit's own serialized form is its extraction for every target.
	SelfExtract bool `json:"selfExtract,omitempty"`
	// The unit never seeds another unit.
	Atomic bool `json:"atomic,omitempty"`
}

// Groups returns the group names of the kind.
func (ks *KindSpec) Groups() []string {
	return strings.Fields(ks.Group)
}

// SchemaSpec is the declaration a Schema is built from.
type SchemaSpec struct {
	Kinds []*KindSpec `json:"kinds"`
}

// Schema is the type registry: the closed vocabulary of kinds, their
// categories and child grammar. A schema is immutable once built, except for
// the element side tables it owns.
type Schema struct {
	Decl *SchemaSpec

	order    []Kind
	specs    map[Kind]*KindSpec
	children map[Kind][]Kind
	legal    map[Kind]map[Kind]bool
	index    derivationIndex
	text     Kind

	tags   *Binding[Kind]
	tables *Binding[*TableInfo]
}

// NewSchema builds a schema, resolving every content expression eagerly.
func NewSchema(spec *SchemaSpec) (*Schema, error) {
	s := &Schema{
		Decl:     spec,
		specs:    make(map[Kind]*KindSpec, len(spec.Kinds)),
		children: make(map[Kind][]Kind, len(spec.Kinds)),
		legal:    make(map[Kind]map[Kind]bool, len(spec.Kinds)),
		tags:     NewBinding[Kind](),
		tables:   NewBinding[*TableInfo](),
	}
	for _, ks := range spec.Kinds {
		if ks.Key == "" || ks.Tag == "" {
			return nil, fmt.Errorf("kind spec %+v needs a key and a tag", *ks)
		}
		if _, dup := s.specs[ks.Key]; dup {
			return nil, fmt.Errorf("kind %s declared twice", ks.Key)
		}
		if ks.Flags.Has(Sealed) && !ks.Role {
			return nil, fmt.Errorf("sealed kind %s must declare a role", ks.Key)
		}
		if ks.Tag == TextTag {
			s.text = ks.Key
		}
		s.specs[ks.Key] = ks
		s.order = append(s.order, ks.Key)
	}
	for _, k := range s.order {
		ks := s.specs[k]
		allowed, err := parseContent(ks.Content, s.specs, s.order)
		if err != nil {
			return nil, fmt.Errorf("kind %s: %w", k, err)
		}
		s.children[k] = allowed
		set := make(map[Kind]bool, len(allowed))
		for _, c := range allowed {
			set[c] = true
		}
		s.legal[k] = set
		for _, ref := range []Kind{ks.Head, ks.Item} {
			if ref != "" && !set[ref] {
				return nil, fmt.Errorf("kind %s: %s is not one of its children", k, ref)
			}
		}
	}
	index, err := buildDerivationIndex(s.order, s.specs)
	if err != nil {
		return nil, err
	}
	s.index = index
	return s, nil
}

// Kinds returns every registered kind in registration order.
func (s *Schema) Kinds() []Kind {
	return append([]Kind(nil), s.order...)
}

// Has reports whether the kind is registered.
func (s *Schema) Has(k Kind) bool {
	_, ok := s.specs[k]
	return ok
}

// Spec returns the declaration of a kind.
func (s *Schema) Spec(k Kind) (*KindSpec, error) {
	ks, ok := s.specs[k]
	if !ok {
		return nil, &UnknownKindError{Kind: k}
	}
	return ks, nil
}

// Classify returns the category flags of a kind.
func (s *Schema) Classify(k Kind) (Flags, error) {
	ks, err := s.Spec(k)
	if err != nil {
		return 0, err
	}
	return ks.Flags, nil
}

// Class returns the dominant classification of a kind.
func (s *Schema) Class(k Kind) (Class, error) {
	ks, err := s.Spec(k)
	if err != nil {
		return 0, err
	}
	return classOf(ks), nil
}

// AllowedChildren returns the kinds legal as direct children of k, in the
// order of its content expression. The returned slice is a copy.
func (s *Schema) AllowedChildren(k Kind) ([]Kind, error) {
	if _, err := s.Spec(k); err != nil {
		return nil, err
	}
	return append([]Kind(nil), s.children[k]...), nil
}

// IsLegalChild reports whether child may appear directly under parent.
// Unknown kinds are never legal.
func (s *Schema) IsLegalChild(parent, child Kind) bool {
	return s.legal[parent][child]
}

// IntersectChildren returns the kinds simultaneously legal under every given
// kind, in the order of the first kind's content expression. It stops as soon
// as the intersection becomes empty.
func (s *Schema) IntersectChildren(kinds ...Kind) ([]Kind, error) {
	if len(kinds) == 0 {
		return nil, nil
	}
	for _, k := range kinds {
		if _, err := s.Spec(k); err != nil {
			return nil, err
		}
	}
	result := append([]Kind(nil), s.children[kinds[0]]...)
	for _, k := range kinds[1:] {
		if len(result) == 0 {
			break
		}
		set := s.legal[k]
		kept := result[:0]
		for _, c := range result {
			if set[c] {
				kept = append(kept, c)
			}
		}
		result = kept
	}
	if len(result) == 0 {
		return nil, nil
	}
	return result, nil
}

// Options returns the kinds that may be inserted under every given kind. It
// is the intersection of their children without the text pseudo-kind, used
// to populate insert and convert menus.
func (s *Schema) Options(kinds ...Kind) ([]Kind, error) {
	common, err := s.IntersectChildren(kinds...)
	if err != nil {
		return nil, err
	}
	var result []Kind
	for _, k := range common {
		if k != s.text {
			result = append(result, k)
		}
	}
	return result, nil
}

// CompatibilityGroup returns the compatibility tag of a kind, or "" when the
// kind has none or is unknown.
func (s *Schema) CompatibilityGroup(k Kind) string {
	if ks, ok := s.specs[k]; ok {
		return ks.Compat
	}
	return ""
}

// TextKind returns the text-node pseudo-kind, or "" when the schema has none.
func (s *Schema) TextKind() Kind {
	return s.text
}
