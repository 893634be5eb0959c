package model

import "strings"

// Kind identifies what structural or semantic role a unit plays (paragraph,
// list item, table, ruby annotation, ...). Kinds are symbolic tags, defined
// once by a schema package and never mutated.
type Kind string

// String returns the kind key.
func (k Kind) String() string { return string(k) }

// Role returns the value of the role attribute used to recover the kind from
// serialized HTML: the lower-cased kind key.
func (k Kind) Role() string { return strings.ToLower(string(k)) }

// Flags is the set of structural categories a kind belongs to. Flags combine:
// a kind can be both Blocks and Struct.
type Flags uint16

const (
	// Struct marks a structural container, whose children follow a fixed grammar.
	Struct Flags = 1 << iota
	// StructX marks a structural child, only meaningful under its container.
	StructX
	// Content marks a unit holding inline content (text and phrasing units).
	Content
	// Inlines marks a unit placed in inline (phrasing) context.
	Inlines
	// Blocks marks a unit placed in block context.
	Blocks
	// Empty marks a leaf without children.
	Empty
	// Sealed marks a unit created from a fixed internal template.
	Sealed
	// Fixed marks a unit that must not be relocated.
	Fixed
	// Special marks structurally atomic units (toc, rules, spacers).
	Special
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{Struct, "struct"},
	{StructX, "structx"},
	{Content, "content"},
	{Inlines, "inlines"},
	{Blocks, "blocks"},
	{Empty, "empty"},
	{Sealed, "sealed"},
	{Fixed, "fixed"},
	{Special, "special"},
}

// Has reports whether every flag of other is set.
func (f Flags) Has(other Flags) bool { return f&other == other }

// Any reports whether at least one flag of other is set.
func (f Flags) Any(other Flags) bool { return f&other != 0 }

func (f Flags) String() string {
	var names []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// Class is the dominant classification of a kind. Exactly one class applies
// to every kind, even when several flags are set.
type Class int

const (
	ClassText Class = iota
	ClassSpecial
	ClassStructX
	ClassStruct
	ClassContent
)

func (c Class) String() string {
	switch c {
	case ClassText:
		return "text"
	case ClassSpecial:
		return "special"
	case ClassStructX:
		return "structx"
	case ClassStruct:
		return "struct"
	default:
		return "content"
	}
}

// classOf applies the precedence text > special > structural child >
// structural container > content.
func classOf(spec *KindSpec) Class {
	switch {
	case spec.Tag == TextTag:
		return ClassText
	case spec.Flags.Has(Special):
		return ClassSpecial
	case spec.Flags.Has(StructX):
		return ClassStructX
	case spec.Flags.Has(Struct):
		return ClassStruct
	default:
		return ClassContent
	}
}
