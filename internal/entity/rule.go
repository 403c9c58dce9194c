package entity

import "expertsys/internal/syntax"

// Rule is (name, Antecedent, Consequent) from §3.
type Rule struct {
	Name       string
	Antecedent Antecedent
	Consequent Consequent
}

// IsBound reports whether both sides of the rule are fully bound.
func (r Rule) IsBound() bool {
	return r.Antecedent.IsBound() && r.Consequent.IsBound()
}

func (r Rule) Clone() Rule {
	return Rule{
		Name:       r.Name,
		Antecedent: r.Antecedent.Clone(),
		Consequent: r.Consequent.Clone(),
	}
}

// HashKey hashes by (antecedent, consequent, name), per §4.A. §9's design
// notes flag that the original source's rule equality compared
// self.consequent == other.antecedent (a likely typo); this hashes both
// sides of the *same* rule, which is the structurally sound reading.
func (r Rule) HashKey() string {
	return r.Antecedent.HashKey() + "::" + r.Consequent.HashKey() + "::" + r.Name
}

// Equal is structural equality consistent with HashKey.
func (r Rule) Equal(o Rule) bool {
	return r.HashKey() == o.HashKey()
}

// SubstituteVariable returns a deep copy of r with every occurrence of
// varName replaced by factName across every textual field of every
// condition and conclusion (§4.D.2c): fact_name fields, condition values,
// and conclusion args.
func (r Rule) SubstituteVariable(varName, factName string) Rule {
	out := r.Clone()
	for di, d := range out.Antecedent.Disjunctions {
		for ci, c := range d.Conditions {
			c.FactName = syntax.SubstituteVariable(c.FactName, varName, factName)
			c.Value = syntax.SubstituteVariable(c.Value, varName, factName)
			out.Antecedent.Disjunctions[di].Conditions[ci] = c
		}
	}
	for i, c := range out.Consequent.Conclusions {
		c.FactName = syntax.SubstituteVariable(c.FactName, varName, factName)
		for ai, a := range c.Args {
			c.Args[ai] = syntax.SubstituteVariable(a, varName, factName)
		}
		out.Consequent.Conclusions[i] = c
	}
	return out
}
