package search

import (
	"testing"

	"expertsys/internal/container"
	"expertsys/internal/entity"
	"expertsys/internal/value"
)

func TestBFSTrivialGoalAlreadyMet(t *testing.T) {
	facts := container.NewFactContainer()
	a := entity.NewFact("A")
	a.Attrs["x"] = value.NewInt(0)
	_ = facts.Add(a)

	goal := container.NewGoalContainer()
	ga := entity.NewFact("A")
	ga.Attrs["x"] = value.NewInt(0)
	_ = goal.Add(ga)

	result, err := BFS(facts, container.NewRuleContainer(), goal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected goal already met")
	}
	if len(result.Path) != 0 || result.Visited != 0 {
		t.Fatalf("expected empty path and 0 visited, got path=%v visited=%d", result.Path, result.Visited)
	}
}

func TestBFSOneStepArithmetic(t *testing.T) {
	facts := container.NewFactContainer()
	a := entity.NewFact("A")
	a.Attrs["x"] = value.NewInt(1)
	_ = facts.Add(a)

	rules := container.NewRuleContainer()
	rules.Add(entity.Rule{
		Name: "increment",
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{Predicate: entity.Eq, FactName: "A", Attr: "x", Value: "1"}},
		}}},
		Consequent: entity.Consequent{Conclusions: []entity.Conclusion{
			{Action: entity.Update, FactName: "A", Args: []string{"x", "A->x + 1"}},
		}},
	})

	goal := container.NewGoalContainer()
	ga := entity.NewFact("A")
	ga.Attrs["x"] = value.NewInt(2)
	_ = goal.Add(ga)

	result, err := BFS(facts, rules, goal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected goal reached")
	}
	if len(result.Path) != 1 {
		t.Fatalf("expected path length 1, got %d", len(result.Path))
	}
}

func TestBFSNILGuardDoesNotPanic(t *testing.T) {
	facts := container.NewFactContainer()
	a := entity.NewFact("A")
	a.Attrs["x"] = value.NewInt(1)
	_ = facts.Add(a)

	rules := container.NewRuleContainer()
	rules.Add(entity.Rule{
		Name: "guard",
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{Predicate: entity.Eq, FactName: "A", Attr: "x", Value: "1"}},
		}}},
		Consequent: entity.Consequent{Conclusions: []entity.Conclusion{
			{Action: entity.Add, FactName: "A", Args: []string{"z", "A->y + 1"}},
		}},
	})

	goal := container.NewGoalContainer()
	ga := entity.NewFact("A")
	ga.Attrs["x"] = value.NewInt(1)
	ga.Attrs["z"] = value.NewNIL()
	_ = goal.Add(ga)

	result, err := BFS(facts, rules, goal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected goal reached with z = NIL")
	}
}

func TestBFSVariableExpansionOnlyMatchingFactFires(t *testing.T) {
	facts := container.NewFactContainer()
	p1 := entity.NewFact("P1")
	p1.Attrs["kind"] = value.NewString("red")
	p2 := entity.NewFact("P2")
	p2.Attrs["kind"] = value.NewString("blue")
	_ = facts.Add(p1)
	_ = facts.Add(p2)

	rules := container.NewRuleContainer()
	rules.Add(entity.Rule{
		Name: "retract_red",
		Antecedent: entity.Antecedent{Disjunctions: []entity.Disjunction{{
			Conditions: []entity.Condition{{Predicate: entity.Eq, FactName: "?X", Attr: "kind", Value: `"red"`}},
		}}},
		Consequent: entity.Consequent{Conclusions: []entity.Conclusion{
			{Action: entity.Retract, FactName: "?X"},
		}},
	})

	goal := container.NewGoalContainer()
	gp2 := entity.NewFact("P2")
	gp2.Attrs["kind"] = value.NewString("blue")
	_ = goal.Add(gp2)

	result, err := BFS(facts, rules, goal, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Found {
		t.Fatalf("expected P1 retracted to reach goal")
	}
	if len(result.Path) != 1 {
		t.Fatalf("expected exactly one rule fired, got %d", len(result.Path))
	}
}

func TestManhattanHeuristicDisplacedTile(t *testing.T) {
	node := container.NewFactContainer()
	tile := entity.NewFact("tile1")
	tile.Attrs["value"] = value.NewInt(1)
	tile.Attrs["x"] = value.NewInt(0)
	tile.Attrs["y"] = value.NewInt(0)
	_ = node.Add(tile)

	goal := container.NewGoalContainer()
	gtile := entity.NewFact("tile1")
	gtile.Attrs["value"] = value.NewInt(1)
	gtile.Attrs["x"] = value.NewInt(2)
	gtile.Attrs["y"] = value.NewInt(1)
	_ = goal.Add(gtile)

	h := Manhattan("value", "x", "y")
	if got := h(node, goal); got != 3 {
		t.Fatalf("expected manhattan distance 3, got %d", got)
	}
}

func TestHeuristicZeroPointAtGoal(t *testing.T) {
	node := container.NewFactContainer()
	a := entity.NewFact("A")
	a.Attrs["x"] = value.NewInt(5)
	_ = node.Add(a)

	goal := container.NewGoalContainer()
	ga := entity.NewFact("A")
	ga.Attrs["x"] = value.NewInt(5)
	_ = goal.Add(ga)

	for _, h := range []Heuristic{Hamming(), Manhattan("x", "x", "x"), LinearConflict("x", "x", "x")} {
		if got := h(node, goal); got != 0 {
			t.Errorf("expected 0 at goal, got %d", got)
		}
	}
}

// TestLinearConflictZeroPointSharedRow exercises two facts sharing an x
// ("row") that are both already at their goal position. Without the "y
// differs from goal" guard on the conflict tally, both facts register a
// same-row offset of 0 and spuriously count as a conflicting pair, even
// though neither fact needs to move.
func TestLinearConflictZeroPointSharedRow(t *testing.T) {
	node := container.NewFactContainer()
	a := entity.NewFact("A")
	a.Attrs["value"] = value.NewInt(1)
	a.Attrs["x"] = value.NewInt(0)
	a.Attrs["y"] = value.NewInt(0)
	_ = node.Add(a)
	b := entity.NewFact("B")
	b.Attrs["value"] = value.NewInt(2)
	b.Attrs["x"] = value.NewInt(0)
	b.Attrs["y"] = value.NewInt(1)
	_ = node.Add(b)

	goal := container.NewGoalContainer()
	ga := entity.NewFact("A")
	ga.Attrs["value"] = value.NewInt(1)
	ga.Attrs["x"] = value.NewInt(0)
	ga.Attrs["y"] = value.NewInt(0)
	_ = goal.Add(ga)
	gb := entity.NewFact("B")
	gb.Attrs["value"] = value.NewInt(2)
	gb.Attrs["x"] = value.NewInt(0)
	gb.Attrs["y"] = value.NewInt(1)
	_ = goal.Add(gb)

	h := LinearConflict("value", "x", "y")
	if got := h(node, goal); got != 0 {
		t.Errorf("expected 0 at goal with a shared row, got %d", got)
	}
}
