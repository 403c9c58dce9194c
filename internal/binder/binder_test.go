package binder

import (
	"testing"

	"expertsys/internal/container"
	"expertsys/internal/entity"
)

func TestBindRulesExpandsAgainstEveryFactName(t *testing.T) {
	facts := container.NewFactContainer()
	_ = facts.Add(entity.NewFact("block_a"))
	_ = facts.Add(entity.NewFact("block_b"))

	rc := container.NewRuleContainer()
	rc.Add(entity.Rule{
		Name: "clears",
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{Predicate: entity.Eq, FactName: "?X", Attr: "clear", Value: "True"}},
		}}},
		Consequent: entity.Consequent{Conclusions: []entity.Conclusion{
			{Action: entity.Retract, FactName: "?X"},
		}},
	})

	out := BindRules(rc, facts)
	if out.HasUnbound() {
		t.Fatalf("expected all rules fully bound")
	}
	bound := out.BoundRules()
	if len(bound) != 2 {
		t.Fatalf("expected 2 bound instances (one per fact name), got %d", len(bound))
	}
}

func TestBindRulesDoesNotMutateInput(t *testing.T) {
	facts := container.NewFactContainer()
	_ = facts.Add(entity.NewFact("block_a"))

	rc := container.NewRuleContainer()
	rc.Add(entity.Rule{
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{FactName: "?X", Value: "1"}},
		}}},
	})

	_ = BindRules(rc, facts)
	if !rc.HasUnbound() {
		t.Fatalf("expected original container to remain unbound")
	}
}

func TestBindRulesPrioritizesConsequentWhenAntecedentClosed(t *testing.T) {
	facts := container.NewFactContainer()
	_ = facts.Add(entity.NewFact("block_a"))
	_ = facts.Add(entity.NewFact("block_b"))

	rc := container.NewRuleContainer()
	rc.Add(entity.Rule{
		Name: "r",
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{Predicate: entity.Eq, FactName: "block_a", Attr: "x", Value: "1"}},
		}}},
		Consequent: entity.Consequent{Conclusions: []entity.Conclusion{
			{Action: entity.Retract, FactName: "?Y"},
		}},
	})

	out := BindRules(rc, facts)
	for _, r := range out.BoundRules() {
		if r.Consequent.Conclusions[0].FactName != "block_a" && r.Consequent.Conclusions[0].FactName != "block_b" {
			t.Fatalf("expected consequent variable substituted with a fact name, got %q", r.Consequent.Conclusions[0].FactName)
		}
	}
	if len(out.BoundRules()) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(out.BoundRules()))
	}
}
