// Package transform implements the edits of an article tree: converting units
// to another kind, inserting, moving and removing them, and editing their
// properties. Edits are steps, first-class values that can be logged.
package transform

import (
	"golang.org/x/net/html"

	"github.com/shodgson/article-go/model"
)

// Step objects represent an atomic change to an article tree.
type Step interface {
	// Apply applies the step, returning a result that either holds the
	// affected unit or the reason of the failure.
	Apply(c *Converter) StepResult

	// ToJSON describes the step for logs.
	ToJSON() map[string]interface{}
}

// StepResult is the result of applying a step. Node is the unit the step
// produced or changed. A nil Node without error means the step did not apply
// to its unit, which is skipped.
type StepResult struct {
	Node *html.Node
	Err  error
}

// OK creates a successful step result.
func OK(n *html.Node) StepResult {
	return StepResult{Node: n}
}

// Fail creates a failed step result.
func Fail(err error) StepResult {
	return StepResult{Err: err}
}

// Skip creates the result of a step that did not apply.
func Skip() StepResult {
	return StepResult{}
}

// ConvertStep changes the kind of a unit, seeding the new unit with the data
// extracted from the old one.
type ConvertStep struct {
	El     *html.Node
	Target model.Kind
}

// Apply is a method of the Step interface.
func (s *ConvertStep) Apply(c *Converter) StepResult {
	n, err := c.Convert(s.El, s.Target)
	if err != nil {
		return Fail(err)
	}
	return OK(n)
}

// ToJSON is a method of the Step interface.
func (s *ConvertStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "convert",
		"tag":      s.El.Data,
		"target":   string(s.Target),
	}
}

// InsertStep creates a unit and inserts it before a sibling, or at the end.
type InsertStep struct {
	Parent  *html.Node
	Before  *html.Node
	Kind    model.Kind
	Content any
	Options map[string]string
}

// Apply is a method of the Step interface.
func (s *InsertStep) Apply(c *Converter) StepResult {
	n, err := c.Insert(s.Parent, s.Before, s.Kind, s.Content, s.Options)
	if err != nil {
		return Fail(err)
	}
	return OK(n)
}

// ToJSON is a method of the Step interface.
func (s *InsertStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "insert",
		"parent":   s.Parent.Data,
		"kind":     string(s.Kind),
		"options":  s.Options,
	}
}

// MoveStep relocates a unit.
type MoveStep struct {
	El     *html.Node
	Parent *html.Node
	Before *html.Node
}

// Apply is a method of the Step interface.
func (s *MoveStep) Apply(c *Converter) StepResult {
	if err := c.Move(s.El, s.Parent, s.Before); err != nil {
		return Fail(err)
	}
	return OK(s.El)
}

// ToJSON is a method of the Step interface.
func (s *MoveStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "move",
		"tag":      s.El.Data,
		"parent":   s.Parent.Data,
	}
}

// RemoveStep detaches a unit for good.
type RemoveStep struct {
	El *html.Node
}

// Apply is a method of the Step interface.
func (s *RemoveStep) Apply(c *Converter) StepResult {
	if err := c.Remove(s.El); err != nil {
		return Fail(err)
	}
	return OK(s.El)
}

// ToJSON is a method of the Step interface.
func (s *RemoveStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "remove",
		"tag":      s.El.Data,
	}
}

// SetAttrsStep edits the properties of a uniform selection of units.
type SetAttrsStep struct {
	Els    []*html.Node
	Names  []string
	Values []any
	Extra  []any
}

// Apply is a method of the Step interface.
func (s *SetAttrsStep) Apply(c *Converter) StepResult {
	if err := c.props.Apply(s.Els, s.Names, s.Values, s.Extra...); err != nil {
		return Fail(err)
	}
	if len(s.Els) == 0 {
		return Skip()
	}
	return OK(s.Els[0])
}

// ToJSON is a method of the Step interface.
func (s *SetAttrsStep) ToJSON() map[string]interface{} {
	return map[string]interface{}{
		"stepType": "setAttrs",
		"count":    len(s.Els),
		"names":    s.Names,
	}
}

var (
	_ Step = &ConvertStep{}
	_ Step = &InsertStep{}
	_ Step = &MoveStep{}
	_ Step = &RemoveStep{}
	_ Step = &SetAttrsStep{}
)
