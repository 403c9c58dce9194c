package agenda

import (
	"testing"

	"expertsys/internal/entity"
)

func TestAgendaPopsMostRecentFirst(t *testing.T) {
	a := New()
	a.Push(entity.Rule{Name: "r1", Consequent: entity.Consequent{Conclusions: []entity.Conclusion{{FactName: "A"}}}})
	a.Push(entity.Rule{Name: "r2", Consequent: entity.Consequent{Conclusions: []entity.Conclusion{{FactName: "B"}}}})

	first, ok := a.Pop()
	if !ok || first.Name != "r2" {
		t.Fatalf("expected r2 popped first, got %+v", first)
	}
	second, ok := a.Pop()
	if !ok || second.Name != "r1" {
		t.Fatalf("expected r1 popped second, got %+v", second)
	}
	if _, ok := a.Pop(); ok {
		t.Fatalf("expected empty agenda")
	}
}

func TestAgendaDropsDuplicateConsequent(t *testing.T) {
	a := New()
	a.Push(entity.Rule{Name: "r1", Consequent: entity.Consequent{Conclusions: []entity.Conclusion{{FactName: "A"}}}})
	a.Push(entity.Rule{Name: "r2", Consequent: entity.Consequent{Conclusions: []entity.Conclusion{{FactName: "A"}}}})

	if a.Len() != 1 {
		t.Fatalf("expected duplicate consequent push dropped, len=%d", a.Len())
	}
}
