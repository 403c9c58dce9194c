package container

import (
	"sort"
	"strconv"

	"expertsys/internal/entity"
)

// RuleContainer holds two disjoint buckets: bound rules and unbound rules
// awaiting expansion by the binder (§3). It supports set-like
// insert/remove/lookup by name within either bucket.
type RuleContainer struct {
	bound   map[string]entity.Rule
	unbound map[string]entity.Rule
	// seq disambiguates rules that share a name across repeated expansions
	// (the binder substitutes the same named rule many times, once per
	// candidate fact) so each substituted instance gets its own container key.
	seq int
}

// NewRuleContainer returns an empty container.
func NewRuleContainer() *RuleContainer {
	return &RuleContainer{bound: map[string]entity.Rule{}, unbound: map[string]entity.Rule{}}
}

func (rc *RuleContainer) nextKey(name string) string {
	rc.seq++
	return name + "#" + strconv.Itoa(rc.seq)
}

// hasName reports whether a rule by this name already occupies m.
func hasName(m map[string]entity.Rule, name string) bool {
	for _, r := range m {
		if r.Name == name {
			return true
		}
	}
	return false
}

// AddBound inserts a rule into the bound bucket (invariant 2: the rule must
// satisfy IsBound()), reporting DuplicateItem if a rule by this name is
// already in the bound bucket (§4.B).
func (rc *RuleContainer) AddBound(r entity.Rule) error {
	if hasName(rc.bound, r.Name) {
		return newDuplicate(r.Name)
	}
	rc.bound[rc.nextKey(r.Name)] = r
	return nil
}

// AddUnbound inserts a rule into the unbound bucket, reporting DuplicateItem
// if a rule by this name is already in the unbound bucket (§4.B).
func (rc *RuleContainer) AddUnbound(r entity.Rule) error {
	if hasName(rc.unbound, r.Name) {
		return newDuplicate(r.Name)
	}
	rc.unbound[rc.nextKey(r.Name)] = r
	return nil
}

// Add inserts r into whichever bucket matches its current bind status,
// reporting DuplicateItem if a same-named rule already occupies that
// bucket. This is the user-facing entry point (parser, shell def_rule/load)
// — it rejects the same knowledge-base rule name being defined twice.
func (rc *RuleContainer) Add(r entity.Rule) error {
	if r.IsBound() {
		return rc.AddBound(r)
	}
	return rc.AddUnbound(r)
}

// AddExpansion inserts r into whichever bucket matches its current bind
// status without the duplicate-name check Add performs. The binder's
// fixed-point loop (§4.D) intentionally produces many substituted instances
// that share their source rule's name, one per candidate fact — that is
// expansion, not a user redefining a rule, so it bypasses Add's
// DuplicateItem detection.
func (rc *RuleContainer) AddExpansion(r entity.Rule) {
	if r.IsBound() {
		rc.bound[rc.nextKey(r.Name)] = r
	} else {
		rc.unbound[rc.nextKey(r.Name)] = r
	}
}

// PopUnbound removes and returns an arbitrary unbound rule, reporting
// false if none remain. "Arbitrary" is deterministic here (lowest
// container key) so binder runs are reproducible.
func (rc *RuleContainer) PopUnbound() (entity.Rule, bool) {
	if len(rc.unbound) == 0 {
		return entity.Rule{}, false
	}
	key := firstKey(rc.unbound)
	r := rc.unbound[key]
	delete(rc.unbound, key)
	return r, true
}

func firstKey(m map[string]entity.Rule) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}

// HasUnbound reports whether any unbound rules remain.
func (rc *RuleContainer) HasUnbound() bool { return len(rc.unbound) > 0 }

// BoundRules returns the bound bucket's rules, deduplicated by structural
// hash (repeated binder expansion of the same source rule against the same
// fact set produces identical instances, which would otherwise double-fire).
func (rc *RuleContainer) BoundRules() []entity.Rule {
	seen := make(map[string]bool, len(rc.bound))
	out := make([]entity.Rule, 0, len(rc.bound))
	keys := make([]string, 0, len(rc.bound))
	for k := range rc.bound {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		r := rc.bound[k]
		h := r.HashKey()
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, r)
	}
	return out
}

// ByName returns every rule (bound or unbound) with the given source name.
func (rc *RuleContainer) ByName(name string) []entity.Rule {
	var out []entity.Rule
	for _, m := range []map[string]entity.Rule{rc.bound, rc.unbound} {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if m[k].Name == name {
				out = append(out, m[k])
			}
		}
	}
	return out
}

// RemoveByName deletes every rule instance with the given source name from
// both buckets, reporting NotExistentItem if none were found.
func (rc *RuleContainer) RemoveByName(name string) error {
	removed := false
	for _, m := range []map[string]entity.Rule{rc.bound, rc.unbound} {
		for k, r := range m {
			if r.Name == name {
				delete(m, k)
				removed = true
			}
		}
	}
	if !removed {
		return newNotExistent(name)
	}
	return nil
}

// Clear empties both buckets.
func (rc *RuleContainer) Clear() {
	rc.bound = map[string]entity.Rule{}
	rc.unbound = map[string]entity.Rule{}
}

// Clone returns a deep copy; the input is not mutated by bind_rules (§4.D's
// contract: "The input is not mutated").
func (rc *RuleContainer) Clone() *RuleContainer {
	out := NewRuleContainer()
	for k, r := range rc.bound {
		out.bound[k] = r.Clone()
	}
	for k, r := range rc.unbound {
		out.unbound[k] = r.Clone()
	}
	out.seq = rc.seq
	return out
}
