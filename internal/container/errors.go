// Package container implements the §3/§4.B collection types: FactContainer,
// RuleContainer, and GoalContainer. Mutators return typed errors instead of
// panicking or relying on exceptions-as-control-flow (§9's "exceptions for
// control flow" design note: result types at the container boundary).
package container

import "fmt"

// Kind enumerates the container error taxonomy from §7.
type Kind int

const (
	NotExistentItem Kind = iota
	DuplicateItem
	EmptyContainer
)

func (k Kind) String() string {
	switch k {
	case NotExistentItem:
		return "NotExistentItem"
	case DuplicateItem:
		return "DuplicateItem"
	case EmptyContainer:
		return "EmptyContainer"
	}
	return "unknown"
}

// Error is the container mutator error type. Kind is checked with errors.As
// by callers that need to distinguish duplicate-vs-missing outcomes.
type Error struct {
	Kind Kind
	Name string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Name)
}

func newDuplicate(name string) error     { return &Error{Kind: DuplicateItem, Name: name} }
func newNotExistent(name string) error   { return &Error{Kind: NotExistentItem, Name: name} }
func newEmptyContainer(name string) error { return &Error{Kind: EmptyContainer, Name: name} }
