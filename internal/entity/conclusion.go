package entity

import (
	"sort"
	"strings"

	"expertsys/internal/syntax"
)

// ActionID names one of the five actions a Conclusion can invoke (§4.C).
type ActionID int

const (
	Assert ActionID = iota
	Retract
	Add
	Update
	Remove
)

func (a ActionID) String() string {
	switch a {
	case Assert:
		return "assert"
	case Retract:
		return "retract"
	case Add:
		return "add"
	case Update:
		return "update"
	case Remove:
		return "remove"
	}
	return "unknown"
}

// Conclusion is (action_id, fact_name, arg_list) from §3. arg_list holds 0,
// 1, or 2 raw-token strings depending on the action's arity (§4.C): assert
// and retract take none, remove takes one (attr), add and update take two
// (attr, value).
type Conclusion struct {
	Action   ActionID
	FactName string
	Args     []string
}

// IsBound mirrors Condition.IsBound: fact_name and any string arg must not
// begin with a logic variable marker.
func (c Conclusion) IsBound() bool {
	if syntax.IsVariable(c.FactName) {
		return false
	}
	for _, a := range c.Args {
		if syntax.IsVariable(a) {
			return false
		}
	}
	return true
}

// IsEvaluated reports whether the value argument (if any) is already a
// resolved literal.
func (c Conclusion) IsEvaluated() bool {
	for _, a := range c.Args {
		if syntax.ContainsArrow(a) || syntax.ContainsArithmeticOperator(a) {
			return false
		}
	}
	return true
}

func (c Conclusion) Clone() Conclusion {
	args := make([]string, len(c.Args))
	copy(args, c.Args)
	return Conclusion{Action: c.Action, FactName: c.FactName, Args: args}
}

// HashKey hashes by (action, fact_name, frozen set of args), per §4.A.
func (c Conclusion) HashKey() string {
	args := make([]string, len(c.Args))
	copy(args, c.Args)
	sort.Strings(args)
	return c.Action.String() + "|" + c.FactName + "|" + strings.Join(args, ",")
}

// FirstUnboundVariable returns the variable token carried by this
// conclusion, or "" if it is already bound.
func (c Conclusion) FirstUnboundVariable() string {
	if syntax.IsVariable(c.FactName) {
		return c.FactName
	}
	for _, a := range c.Args {
		if v := syntax.FirstVariable(a); v != "" {
			return v
		}
	}
	return ""
}

// Consequent is an ordered list of Conclusions applied in order to a copy of
// the incoming state (§3).
type Consequent struct {
	Conclusions []Conclusion
}

func (s Consequent) Clone() Consequent {
	out := make([]Conclusion, len(s.Conclusions))
	for i, c := range s.Conclusions {
		out[i] = c.Clone()
	}
	return Consequent{Conclusions: out}
}

func (s Consequent) IsBound() bool {
	for _, c := range s.Conclusions {
		if !c.IsBound() {
			return false
		}
	}
	return true
}

func (s Consequent) HashKey() string {
	keys := make([]string, len(s.Conclusions))
	for i, c := range s.Conclusions {
		keys[i] = c.HashKey()
	}
	sort.Strings(keys)
	return strings.Join(keys, ";")
}

// FirstUnboundConclusion returns the index of the first unbound conclusion
// and its variable token, used by the binder's priority rule (§4.D.2b,
// first branch: antecedent closed, consequent still open).
func (s Consequent) FirstUnboundConclusion() (idx int, varName string, found bool) {
	for i, c := range s.Conclusions {
		if !c.IsBound() {
			return i, c.FirstUnboundVariable(), true
		}
	}
	return 0, "", false
}
