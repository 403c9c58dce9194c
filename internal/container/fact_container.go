package container

import (
	"sort"

	"expertsys/internal/entity"
)

// FactContainer is a mapping from fact name to Fact with unique names
// (invariant 1, §3). It doubles as search-graph node identity, so it must
// be deeply hashable/equatable — see HashKey.
type FactContainer struct {
	facts map[string]entity.Fact
}

// NewFactContainer returns an empty container.
func NewFactContainer() *FactContainer {
	return &FactContainer{facts: make(map[string]entity.Fact)}
}

// Has reports membership by name.
func (fc *FactContainer) Has(name string) bool {
	_, ok := fc.facts[name]
	return ok
}

// Get looks up a fact by name.
func (fc *FactContainer) Get(name string) (entity.Fact, error) {
	f, ok := fc.facts[name]
	if !ok {
		return entity.Fact{}, newNotExistent(name)
	}
	return f, nil
}

// Add inserts a fact, reporting DuplicateItem if the name is already
// present.
func (fc *FactContainer) Add(f entity.Fact) error {
	if fc.Has(f.Name) {
		return newDuplicate(f.Name)
	}
	fc.facts[f.Name] = f
	return nil
}

// Set inserts or overwrites a fact by name, used internally by actions that
// have already validated presence/absence themselves (add/update/remove).
func (fc *FactContainer) Set(f entity.Fact) {
	fc.facts[f.Name] = f
}

// Remove deletes a fact by name, reporting NotExistentItem if absent.
func (fc *FactContainer) Remove(name string) error {
	if !fc.Has(name) {
		return newNotExistent(name)
	}
	delete(fc.facts, name)
	return nil
}

// Update bulk-merges another container's facts into this one, overwriting
// any existing entries with the same name.
func (fc *FactContainer) Update(other *FactContainer) {
	for _, f := range other.facts {
		fc.facts[f.Name] = f
	}
}

// Clear empties the container.
func (fc *FactContainer) Clear() {
	fc.facts = make(map[string]entity.Fact)
}

// Len returns the number of facts.
func (fc *FactContainer) Len() int { return len(fc.facts) }

// Names returns fact names in a reproducible (sorted) order — iteration
// order is semantically irrelevant per §3 but reproducibility is desirable
// for deterministic binder expansion order.
func (fc *FactContainer) Names() []string {
	names := make([]string, 0, len(fc.facts))
	for n := range fc.facts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Facts returns the facts in Names() order.
func (fc *FactContainer) Facts() []entity.Fact {
	names := fc.Names()
	out := make([]entity.Fact, len(names))
	for i, n := range names {
		out[i] = fc.facts[n]
	}
	return out
}

// Clone returns a deep copy: mutations on the copy never affect the
// original (§4.B).
func (fc *FactContainer) Clone() *FactContainer {
	out := NewFactContainer()
	for n, f := range fc.facts {
		out.facts[n] = f.Clone()
	}
	return out
}

// Equal implements the value equality FactContainer needs to serve as
// search-graph node identity (§3: "must be deeply hashable/equatable").
func (fc *FactContainer) Equal(o *FactContainer) bool {
	if len(fc.facts) != len(o.facts) {
		return false
	}
	for n, f := range fc.facts {
		of, ok := o.facts[n]
		if !ok || !f.Equal(of) {
			return false
		}
	}
	return true
}

// HashKey hashes the full attribute mapping of every fact, order-independent.
func (fc *FactContainer) HashKey() string {
	keys := make([]string, 0, len(fc.facts))
	for n := range fc.facts {
		keys = append(keys, n)
	}
	sort.Strings(keys)
	var out string
	for _, n := range keys {
		out += fc.facts[n].HashKey() + "||"
	}
	return out
}
