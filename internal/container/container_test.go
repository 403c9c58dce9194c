package container

import (
	"errors"
	"testing"

	"expertsys/internal/entity"
	"expertsys/internal/value"
)

func TestFactContainerAddDuplicate(t *testing.T) {
	fc := NewFactContainer()
	if err := fc.Add(entity.NewFact("A")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := fc.Add(entity.NewFact("A"))
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != DuplicateItem {
		t.Fatalf("expected DuplicateItem, got %v", err)
	}
}

func TestFactContainerRemoveMissing(t *testing.T) {
	fc := NewFactContainer()
	err := fc.Remove("missing")
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != NotExistentItem {
		t.Fatalf("expected NotExistentItem, got %v", err)
	}
}

func TestFactContainerCloneIndependence(t *testing.T) {
	fc := NewFactContainer()
	f := entity.NewFact("A")
	f.Attrs["x"] = value.NewInt(1)
	_ = fc.Add(f)

	clone := fc.Clone()
	cf, _ := clone.Get("A")
	cf.Attrs["x"] = value.NewInt(99)
	clone.Set(cf)

	orig, _ := fc.Get("A")
	if orig.Attrs["x"].I != 1 {
		t.Fatalf("clone mutation leaked into original: %v", orig)
	}
}

func TestFactContainerEqual(t *testing.T) {
	a := NewFactContainer()
	b := NewFactContainer()
	_ = a.Add(entity.Fact{Name: "A", Attrs: map[string]value.Value{"x": value.NewInt(1)}})
	_ = b.Add(entity.Fact{Name: "A", Attrs: map[string]value.Value{"x": value.NewInt(1)}})
	if !a.Equal(b) {
		t.Fatalf("expected equal containers")
	}
	_ = b.Remove("A")
	_ = b.Add(entity.Fact{Name: "A", Attrs: map[string]value.Value{"x": value.NewInt(2)}})
	if a.Equal(b) {
		t.Fatalf("expected unequal containers after mutation")
	}
}

func TestRuleContainerBoundUnboundBuckets(t *testing.T) {
	rc := NewRuleContainer()
	bound := entity.Rule{Name: "r1", Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
		Conditions: []entity.Condition{{FactName: "A", Value: "1"}},
	}}}}
	unbound := entity.Rule{Name: "r2", Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
		Conditions: []entity.Condition{{FactName: "?X", Value: "1"}},
	}}}}

	rc.Add(bound)
	rc.Add(unbound)

	if !rc.HasUnbound() {
		t.Fatalf("expected an unbound rule present")
	}
	if len(rc.BoundRules()) != 1 {
		t.Fatalf("expected exactly one bound rule, got %d", len(rc.BoundRules()))
	}

	popped, ok := rc.PopUnbound()
	if !ok || popped.Name != "r2" {
		t.Fatalf("expected to pop r2, got %+v, ok=%v", popped, ok)
	}
	if rc.HasUnbound() {
		t.Fatalf("expected no unbound rules remaining")
	}
}

func TestRuleContainerAddDuplicateName(t *testing.T) {
	rc := NewRuleContainer()
	bound := entity.Rule{Name: "r1", Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
		Conditions: []entity.Condition{{FactName: "A", Value: "1"}},
	}}}}
	if err := rc.Add(bound); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := rc.Add(bound)
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Kind != DuplicateItem {
		t.Fatalf("expected DuplicateItem for a same-named bound rule, got %v", err)
	}

	unbound := entity.Rule{Name: "r2", Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
		Conditions: []entity.Condition{{FactName: "?X", Value: "1"}},
	}}}}
	if err := rc.Add(unbound); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = rc.Add(unbound)
	if !errors.As(err, &cerr) || cerr.Kind != DuplicateItem {
		t.Fatalf("expected DuplicateItem for a same-named unbound rule, got %v", err)
	}
}

func TestRuleContainerAddExpansionBypassesDuplicateCheck(t *testing.T) {
	rc := NewRuleContainer()
	unbound := entity.Rule{Name: "r1", Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
		Conditions: []entity.Condition{{FactName: "?X", Value: "1"}},
	}}}}
	rc.AddExpansion(unbound)
	rc.AddExpansion(unbound)

	count := 0
	for _, m := range []map[string]entity.Rule{rc.bound, rc.unbound} {
		count += len(m)
	}
	if count != 2 {
		t.Fatalf("expected both expansion instances to be retained, got %d", count)
	}
}

func TestRuleContainerCloneDoesNotMutateOriginal(t *testing.T) {
	rc := NewRuleContainer()
	rc.Add(entity.Rule{Name: "r1"})

	clone := rc.Clone()
	clone.Add(entity.Rule{Name: "r2"})

	if len(rc.BoundRules()) != 1 {
		t.Fatalf("mutating clone affected original container")
	}
}
