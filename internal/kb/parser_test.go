package kb

import (
	"strings"
	"testing"
)

const sampleKB = `
# a minimal knowledge base
beginFact:block_a
  x = 0
  y = 0
endFact

beginFact:target
  x = 2
  y = 1
endFact

beginRule:move_right
  equal(?B, y, 0)
then
  update(?B, x, ?B->x + 1)
endRule

beginGoal:
beginFact:target
  x = 2
  y = 1
endFact
endGoal
`

func TestParseSampleKnowledgeBase(t *testing.T) {
	kbase, err := Parse(strings.NewReader(sampleKB))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kbase.Facts.Len() != 2 {
		t.Fatalf("expected 2 facts, got %d", kbase.Facts.Len())
	}
	if !kbase.Facts.Has("block_a") || !kbase.Facts.Has("target") {
		t.Fatalf("expected block_a and target facts, got %v", kbase.Facts.Names())
	}
	rules := kbase.Rules.ByName("move_right")
	if len(rules) != 1 {
		t.Fatalf("expected 1 move_right rule, got %d", len(rules))
	}
	r := rules[0]
	if len(r.Antecedent.Disjunctions) != 1 || len(r.Antecedent.Disjunctions[0].Conditions) != 1 {
		t.Fatalf("expected a single condition in the antecedent, got %+v", r.Antecedent)
	}
	if len(r.Consequent.Conclusions) != 1 {
		t.Fatalf("expected a single conclusion, got %+v", r.Consequent)
	}
	if !kbase.Goal.Has("target") {
		t.Fatalf("expected goal to contain target, got %v", kbase.Goal.Names())
	}
}

func TestParseDisjunction(t *testing.T) {
	src := `
beginFact:a
endFact
beginRule:r
  equal(?B, x, 1) || equal(?B, x, 2)
then
  assert(?B)
endRule
`
	kbase, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rules := kbase.Rules.ByName("r")
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	d := rules[0].Antecedent.Disjunctions[0]
	if len(d.Conditions) != 2 {
		t.Fatalf("expected 2 disjunct conditions, got %d", len(d.Conditions))
	}
}

func TestParseUnnamedFactErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("beginFact:\nendFact\n"))
	assertSyntaxKind(t, err, UnnamedFact)
}

func TestParseMisplacedDelimiterErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("endFact\n"))
	assertSyntaxKind(t, err, MisplacedDelimiter)
}

func TestParseEmptyAntecedentErrors(t *testing.T) {
	src := "beginRule:r\nthen\nassert(?B)\nendRule\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, EmptyAntecedent)
}

func TestParseEmptyConsequentErrors(t *testing.T) {
	src := "beginRule:r\nequal(?B,x,1)\nthen\nendRule\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, EmptyConsequent)
}

func TestParseUnknownPredicateErrors(t *testing.T) {
	src := "beginRule:r\nbogus(?B,x,1)\nthen\nassert(?B)\nendRule\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, UnknownPredicate)
}

func TestParseUnknownActionErrors(t *testing.T) {
	src := "beginRule:r\nequal(?B,x,1)\nthen\nbogus(?B)\nendRule\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, UnknownAction)
}

func TestParseBadArgumentCountErrors(t *testing.T) {
	src := "beginRule:r\nequal(?B,x)\nthen\nassert(?B)\nendRule\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, BadArgumentCount)
}

func TestParseBadLiteralErrors(t *testing.T) {
	src := "beginFact:a\nx\nendFact\n"
	_, err := Parse(strings.NewReader(src))
	assertSyntaxKind(t, err, BadLiteral)
}

func TestParseUnendedBlockErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("beginFact:a\nx = 1\n"))
	assertSyntaxKind(t, err, UnendedBlock)
}

func TestParseCommentsAreStripped(t *testing.T) {
	src := `
beginFact:a # the only fact
  x = 1 # an attribute
endFact
`
	kbase, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, err := kbase.Facts.Get("a")
	if err != nil {
		t.Fatalf("expected fact a: %v", err)
	}
	v, ok := f.Get("x")
	if !ok || v.I != 1 {
		t.Fatalf("expected x=1, got %+v ok=%v", v, ok)
	}
}

func TestParseQuotedStringLiteralSurvivesHashInside(t *testing.T) {
	src := `
beginFact:a
  label = "not a # comment"
endFact
`
	kbase, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, _ := kbase.Facts.Get("a")
	v, ok := f.Get("label")
	if !ok || v.S != "not a # comment" {
		t.Fatalf("expected literal text preserved, got %+v ok=%v", v, ok)
	}
}

func assertSyntaxKind(t *testing.T, err error, want SyntaxErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected a %s error, got nil", want)
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
	}
	if se.Kind != want {
		t.Fatalf("expected kind %s, got %s", want, se.Kind)
	}
}
