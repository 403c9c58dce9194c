// Package binder expands partially-bound rules into fully-bound instances
// by trying each logic variable against every fact name currently in the
// working-memory state (§4.D).
package binder

import (
	"expertsys/internal/container"
	"expertsys/internal/entity"
)

// BindRules returns a new RuleContainer in which every unbound rule in rc
// has been expanded into zero or more fully bound instances against facts.
// rc is not mutated (§4.D contract).
func BindRules(rc *container.RuleContainer, facts *container.FactContainer) *container.RuleContainer {
	out := rc.Clone()
	names := facts.Names()

	for out.HasUnbound() {
		r, ok := out.PopUnbound()
		if !ok {
			break
		}

		varName, ok := pickVariable(r)
		if !ok {
			// Nothing left to expand (shouldn't happen for a well-formed
			// unbound rule), reinsert as-is to avoid silently dropping it.
			out.AddExpansion(r)
			continue
		}

		for _, name := range names {
			out.AddExpansion(r.SubstituteVariable(varName, name))
		}
	}

	return out
}

// pickVariable implements the binder's priority rule (§4.D.2b): if the
// antecedent is already bound but the consequent holds an unbound
// conclusion, expand that conclusion's variable first; otherwise expand the
// first unbound variable found scanning the antecedent left to right.
func pickVariable(r entity.Rule) (string, bool) {
	if r.Antecedent.IsBound() {
		if _, varName, found := r.Consequent.FirstUnboundConclusion(); found {
			return varName, true
		}
	}
	if v := r.Antecedent.FirstUnboundVariable(); v != "" {
		return v, true
	}
	return "", false
}
