package model

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind is matched by every *UnknownKindError.
	ErrUnknownKind = errors.New("unknown kind")
	// ErrIllegalChild is matched by every *IllegalChildError.
	ErrIllegalChild = errors.New("illegal child")
	// ErrUnresolvableKind is matched by every *UnresolvableKindError.
	ErrUnresolvableKind = errors.New("unresolvable kind")
)

// UnknownKindError is returned when a kind is not registered in the schema.
// It is always fatal to the requested operation.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown kind %q", string(e.Kind))
}

func (e *UnknownKindError) Is(target error) bool { return target == ErrUnknownKind }

// IllegalChildError is returned when content offered for a unit violates the
// allowed children of its kind.
type IllegalChildError struct {
	Parent Kind
	Child  Kind
}

func (e *IllegalChildError) Error() string {
	return fmt.Sprintf("%s is not a legal child of %s", e.Child, e.Parent)
}

func (e *IllegalChildError) Is(target error) bool { return target == ErrIllegalChild }

// UnresolvableKindError is returned when an element's kind cannot be derived
// from its tag name and role attribute.
type UnresolvableKindError struct {
	Tag  string
	Role string
}

func (e *UnresolvableKindError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("no kind for <%s>", e.Tag)
	}
	return fmt.Sprintf("no kind for <%s role=%q>", e.Tag, e.Role)
}

func (e *UnresolvableKindError) Is(target error) bool { return target == ErrUnresolvableKind }
