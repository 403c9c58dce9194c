package entity

import (
	"sort"
	"strings"

	"expertsys/internal/syntax"
)

// PredicateID names one of the six comparison predicates a Condition can
// reference (§4.C).
type PredicateID int

const (
	Eq PredicateID = iota
	Neq
	Gt
	Lt
	Gte
	Lte
)

func (p PredicateID) String() string {
	switch p {
	case Eq:
		return "equal"
	case Neq:
		return "not_equal"
	case Gt:
		return "greater_than"
	case Lt:
		return "less_than"
	case Gte:
		return "greater_equal_than"
	case Lte:
		return "less_equal_than"
	}
	return "unknown"
}

// Condition is (predicate_id, fact_name, attr, value) from §3. Value is kept
// as the raw token string (a literal, an attribute reference, or an
// arithmetic expression) so the binder can substitute logic variables
// textually before the evaluator resolves it into a concrete value.
type Condition struct {
	Predicate PredicateID
	FactName  string
	Attr      string
	Value     string
}

// IsBound reports whether neither fact_name nor value (per §3) begins with a
// logic variable marker. This is a literal prefix check, not a full scan for
// embedded variables — preserved verbatim from the spec's stated
// definition, which only inspects the leading character of each field.
func (c Condition) IsBound() bool {
	return !syntax.IsVariable(c.FactName) && !syntax.IsVariable(c.Value)
}

// IsEvaluated reports whether Value is already a resolved literal — i.e. it
// contains neither an attribute-reference arrow nor an arithmetic operator.
func (c Condition) IsEvaluated() bool {
	return !syntax.ContainsArrow(c.Value) && !syntax.ContainsArithmeticOperator(c.Value)
}

// Clone returns an independent copy.
func (c Condition) Clone() Condition { return c }

// HashKey hashes by (predicate, fact_name, attr, value), per §4.A.
func (c Condition) HashKey() string {
	return c.Predicate.String() + "|" + c.FactName + "|" + c.Attr + "|" + c.Value
}

// Disjunction is an ordered list of Conditions evaluating true iff any
// condition is true (short-circuit OR), per §3.
type Disjunction struct {
	Conditions []Condition
}

func (d Disjunction) Clone() Disjunction {
	out := make([]Condition, len(d.Conditions))
	copy(out, d.Conditions)
	return Disjunction{Conditions: out}
}

// IsBound reports whether every condition in the disjunction is bound.
func (d Disjunction) IsBound() bool {
	for _, c := range d.Conditions {
		if !c.IsBound() {
			return false
		}
	}
	return true
}

// HashKey hashes by the frozen set of children — order does not affect
// identity (§4.A).
func (d Disjunction) HashKey() string {
	keys := make([]string, len(d.Conditions))
	for i, c := range d.Conditions {
		keys[i] = c.HashKey()
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// Antecedent is an ordered list of Disjunctions evaluating true (implicit
// AND) iff every disjunction is true (§3).
type Antecedent struct {
	Disjunctions []Disjunction
}

func (a Antecedent) Clone() Antecedent {
	out := make([]Disjunction, len(a.Disjunctions))
	for i, d := range a.Disjunctions {
		out[i] = d.Clone()
	}
	return Antecedent{Disjunctions: out}
}

// IsBound reports whether every disjunction is bound.
func (a Antecedent) IsBound() bool {
	for _, d := range a.Disjunctions {
		if !d.IsBound() {
			return false
		}
	}
	return true
}

func (a Antecedent) HashKey() string {
	keys := make([]string, len(a.Disjunctions))
	for i, d := range a.Disjunctions {
		keys[i] = d.HashKey()
	}
	sort.Strings(keys)
	return strings.Join(keys, "&")
}

// FirstUnboundVariable implements the binder's priority rule (§4.D.2b,
// second branch): scan disjunctions in order, conditions within a
// disjunction in order, and return the variable token of the first unbound
// condition found. Returns "" if the antecedent is fully bound.
func (a Antecedent) FirstUnboundVariable() string {
	for _, d := range a.Disjunctions {
		for _, c := range d.Conditions {
			if c.IsBound() {
				continue
			}
			if syntax.IsVariable(c.FactName) {
				return c.FactName
			}
			if v := syntax.FirstVariable(c.Value); v != "" {
				return v
			}
		}
	}
	return ""
}
