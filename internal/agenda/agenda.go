// Package agenda implements the priority queue of fireable rules drained
// during a single search-node expansion (§4.F): most-recently-pushed rule
// fires first, and a rule whose consequent is already queued is dropped
// rather than queued twice.
package agenda

import "expertsys/internal/entity"

type entry struct {
	seq  int
	rule entity.Rule
}

// Agenda holds bound, currently-firing rules in LIFO-recency order.
// Insertion order is tracked with a monotonic counter rather than a wall
// clock (the spec's own implementation hint, "-now() as key", is just a
// decreasing-key trick — a counter gives the same most-recent-first order
// without timing flakiness).
type Agenda struct {
	entries []entry
	queued  map[string]bool // consequent hash -> present
	nextSeq int
}

// New returns an empty agenda.
func New() *Agenda {
	return &Agenda{queued: make(map[string]bool)}
}

// Push queues rule unless a rule with the same consequent is already
// present, in which case the push is silently dropped (§4.F
// de-duplication).
func (a *Agenda) Push(rule entity.Rule) {
	key := rule.Consequent.HashKey()
	if a.queued[key] {
		return
	}
	a.queued[key] = true
	a.nextSeq++
	a.entries = append(a.entries, entry{seq: a.nextSeq, rule: rule})
}

// Pop removes and returns the most recently pushed rule, reporting false if
// the agenda is empty.
func (a *Agenda) Pop() (entity.Rule, bool) {
	if len(a.entries) == 0 {
		return entity.Rule{}, false
	}
	best := 0
	for i, e := range a.entries {
		if e.seq > a.entries[best].seq {
			best = i
		}
	}
	e := a.entries[best]
	a.entries = append(a.entries[:best], a.entries[best+1:]...)
	delete(a.queued, e.rule.Consequent.HashKey())
	return e.rule, true
}

// Len reports how many rules remain queued.
func (a *Agenda) Len() int { return len(a.entries) }
