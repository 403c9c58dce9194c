// Package operation is the closed registry of named predicates and actions
// referenced by rules (§4.C). Per the §9 design note ("duck-typed
// action/predicate dispatch... replace with a tagged variant"), dispatch is
// a switch over the entity.PredicateID/ActionID enums rather than
// string-concatenation-based lookup — the registry of known operators is
// closed at compile time.
package operation

import (
	"fmt"

	"expertsys/internal/container"
	"expertsys/internal/entity"
	"expertsys/internal/value"
)

// AttrError reports a conclusion applied in an illegal state: add on an
// attribute that already exists, or update/remove on one that is absent
// (§4.C, §7).
type AttrError struct {
	Action entity.ActionID
	Fact   string
	Attr   string
}

func (e *AttrError) Error() string {
	return fmt.Sprintf("%s: attribute %q on fact %q", e.Action, e.Attr, e.Fact)
}

// EvalPredicate evaluates a single Condition's comparison against the
// current state. An absent attribute makes the condition false, not an
// error (§4.C).
func EvalPredicate(pred entity.PredicateID, facts *container.FactContainer, factName, attr string, want value.Value) bool {
	fact, err := facts.Get(factName)
	if err != nil {
		return false
	}
	got, ok := fact.Get(attr)
	if !ok {
		return false
	}

	switch pred {
	case entity.Eq:
		return got.Equal(want)
	case entity.Neq:
		return !got.Equal(want)
	case entity.Gt:
		cmp, ok := value.Compare(got, want)
		return ok && cmp > 0
	case entity.Lt:
		cmp, ok := value.Compare(got, want)
		return ok && cmp < 0
	case entity.Gte:
		cmp, ok := value.Compare(got, want)
		return ok && cmp >= 0
	case entity.Lte:
		cmp, ok := value.Compare(got, want)
		return ok && cmp <= 0
	}
	return false
}

// ApplyAction mutates facts in place per the Conclusion's action. attr and
// val are read according to the action's arity (§4.C): assert/retract use
// neither, remove uses only attr, add/update use both. facts must be a
// private working copy — the search driver only ever calls this on a fresh
// clone of a state (§3, invariant 3; §8, property 3).
func ApplyAction(action entity.ActionID, facts *container.FactContainer, factName, attr string, val value.Value) error {
	switch action {
	case entity.Assert:
		facts.Set(entity.NewFact(factName))
		return nil

	case entity.Retract:
		if !facts.Has(factName) {
			return nil
		}
		return facts.Remove(factName)

	case entity.Add:
		fact, err := facts.Get(factName)
		if err != nil {
			fact = entity.NewFact(factName)
		} else {
			fact = fact.Clone()
		}
		if _, exists := fact.Get(attr); exists {
			return &AttrError{Action: action, Fact: factName, Attr: attr}
		}
		fact.Attrs[attr] = val
		facts.Set(fact)
		return nil

	case entity.Update:
		fact, err := facts.Get(factName)
		if err != nil {
			return &AttrError{Action: action, Fact: factName, Attr: attr}
		}
		fact = fact.Clone()
		if _, exists := fact.Get(attr); !exists {
			return &AttrError{Action: action, Fact: factName, Attr: attr}
		}
		fact.Attrs[attr] = val
		facts.Set(fact)
		return nil

	case entity.Remove:
		fact, err := facts.Get(factName)
		if err != nil {
			return &AttrError{Action: action, Fact: factName, Attr: attr}
		}
		fact = fact.Clone()
		if _, exists := fact.Get(attr); !exists {
			return &AttrError{Action: action, Fact: factName, Attr: attr}
		}
		delete(fact.Attrs, attr)
		facts.Set(fact)
		return nil
	}
	return fmt.Errorf("unknown action %v", action)
}
