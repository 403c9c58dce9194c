// Package search implements the shared graph-search expansion loop (§4.G)
// over working-memory states, with BFS, DFS, A*, and best-first variants
// distinguished only by how the open list is ordered.
package search

import (
	"fmt"

	"expertsys/internal/binder"
	"expertsys/internal/container"
	"expertsys/internal/entity"
	"expertsys/internal/evaluator"
	"expertsys/internal/operation"
	"expertsys/internal/syntax"
	"expertsys/internal/value"
)

// Result carries the outcome of a search: the reached state, the sequence
// of rules fired to reach it, and the number of nodes visited.
type Result struct {
	State   *container.FactContainer
	Path    []entity.Rule
	Visited int
	Found   bool
}

// Penetrance is the reported ratio path_length / visited_nodes. Returns 0
// when nothing was visited (the trivial goal-at-start case).
func (r Result) Penetrance() float64 {
	if r.Visited == 0 {
		return 0
	}
	return float64(len(r.Path)) / float64(r.Visited)
}

// goalReached reports whether state equals goal: the same fact names, each
// with an equal attribute mapping. A state carrying a fact the goal does not
// mention does not match.
func goalReached(state *container.FactContainer, goal *container.GoalContainer) bool {
	return state.Equal(goal.FactContainer)
}

// antecedentHolds evaluates a fully bound, fully evaluated rule's
// antecedent against state: true iff every disjunction contains at least
// one true condition.
func antecedentHolds(ante entity.Antecedent, state *container.FactContainer) bool {
	for _, d := range ante.Disjunctions {
		if !disjunctionHolds(d, state) {
			return false
		}
	}
	return true
}

func disjunctionHolds(d entity.Disjunction, state *container.FactContainer) bool {
	for _, c := range d.Conditions {
		want := syntax.CastTrial(c.Value)
		if operation.EvalPredicate(c.Predicate, state, c.FactName, c.Attr, want) {
			return true
		}
	}
	return false
}

// applyConsequent returns a fresh state produced by applying every
// conclusion of consequent, in order, to a copy of state (§3: "Consequent
// application: pure function state -> state").
func applyConsequent(consequent entity.Consequent, state *container.FactContainer) (*container.FactContainer, error) {
	next := state.Clone()
	for _, c := range consequent.Conclusions {
		attr, val := conclusionOperands(c)
		if err := operation.ApplyAction(c.Action, next, c.FactName, attr, val); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// conclusionOperands unpacks a conclusion's already-evaluated args per its
// action arity (§4.C): remove carries only an attr, add/update carry
// (attr, value).
func conclusionOperands(c entity.Conclusion) (attr string, val value.Value) {
	switch c.Action {
	case entity.Remove:
		return c.Args[0], value.NewNIL()
	case entity.Add, entity.Update:
		return c.Args[0], syntax.CastTrial(c.Args[1])
	default:
		return "", value.NewNIL()
	}
}

// bindCache remembers the bound-rule set from the most recently expanded
// node, keyed by its fact-name set. The binder only substitutes on fact
// *names*, so the bound-rule set is unchanged across nodes that share the
// same names even when attribute values differ (§4.G, step 3).
type bindCache struct {
	namesKey string
	bound    []entity.Rule
}

func (bc *bindCache) boundRules(rules *container.RuleContainer, state *container.FactContainer) []entity.Rule {
	key := fmt.Sprint(state.Names())
	if bc.namesKey == key && bc.bound != nil {
		return bc.bound
	}
	bound := binder.BindRules(rules, state).BoundRules()
	bc.namesKey = key
	bc.bound = bound
	return bound
}

// fireableRules evaluates every currently bound rule against state and
// returns the ones whose antecedent holds, already resolved by the
// evaluator.
func fireableRules(bc *bindCache, rules *container.RuleContainer, state *container.FactContainer) ([]entity.Rule, error) {
	var fireable []entity.Rule
	for _, r := range bc.boundRules(rules, state) {
		evaluated, err := evaluator.EvaluateValues(r, state)
		if err != nil {
			return nil, err
		}
		if antecedentHolds(evaluated.Antecedent, state) {
			fireable = append(fireable, evaluated)
		}
	}
	return fireable, nil
}
