// Package entity implements the §3/§4.A data model: facts, rules, and the
// antecedent/consequent structures that compose them, together with their
// structural equality and hashing.
package entity

import (
	"sort"
	"strings"

	"expertsys/internal/value"
)

// Fact is a named record of attribute values.
type Fact struct {
	Name  string
	Attrs map[string]value.Value
}

// NewFact returns a fact with an empty attribute map, as produced by the
// "assert" action.
func NewFact(name string) Fact {
	return Fact{Name: name, Attrs: make(map[string]value.Value)}
}

// Get returns the attribute value and whether it is present. Predicates
// treat an absent attribute as a false match rather than an error (§4.C).
func (f Fact) Get(attr string) (value.Value, bool) {
	v, ok := f.Attrs[attr]
	return v, ok
}

// Clone returns a deep copy; mutating the result never affects f (§4.B,
// invariant 3 in §3).
func (f Fact) Clone() Fact {
	attrs := make(map[string]value.Value, len(f.Attrs))
	for k, v := range f.Attrs {
		attrs[k] = v
	}
	return Fact{Name: f.Name, Attrs: attrs}
}

// Equal implements the structural equality from §3: same name, same
// attribute mapping.
func (f Fact) Equal(o Fact) bool {
	if f.Name != o.Name || len(f.Attrs) != len(o.Attrs) {
		return false
	}
	for k, v := range f.Attrs {
		ov, ok := o.Attrs[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// HashKey hashes by (name, frozen set of attr items), as required by §4.A.
func (f Fact) HashKey() string {
	keys := make([]string, 0, len(f.Attrs))
	for k := range f.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(f.Name)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(f.Attrs[k].HashKey())
	}
	return b.String()
}
