package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"expertsys/internal/config"
	"expertsys/internal/container"
)

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(config.DefaultConfig(), nil, &out)
	return s, &out
}

func TestUnknownCommandIsRecovered(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Dispatch(context.Background(), "bogus")
	if err == nil {
		t.Fatal("expected an error")
	}
	ce, ok := err.(*CommandError)
	if !ok || ce.Kind != UnknownCommand {
		t.Fatalf("expected UnknownCommand, got %v", err)
	}
}

func TestClearFactsAndRules(t *testing.T) {
	s, _ := newTestSession(t)
	writeKB(t, s, `
beginFact:a
  x = 1
endFact
beginRule:r
  equal(?B,x,1)
then
  assert(?B)
endRule
`)
	if s.Facts.Len() != 1 {
		t.Fatalf("expected 1 fact loaded, got %d", s.Facts.Len())
	}
	if err := s.Dispatch(context.Background(), "clear_facts"); err != nil {
		t.Fatal(err)
	}
	if s.Facts.Len() != 0 {
		t.Fatalf("expected facts cleared, got %d", s.Facts.Len())
	}
	if err := s.Dispatch(context.Background(), "clear_rules"); err != nil {
		t.Fatal(err)
	}
	if len(s.Rules.BoundRules()) != 0 || s.Rules.HasUnbound() {
		t.Fatalf("expected rules cleared")
	}
}

func TestRunBFSReportsTrivialGoal(t *testing.T) {
	s, out := newTestSession(t)
	writeKB(t, s, `
beginFact:a
  x = 1
endFact
beginGoal:
beginFact:a
  x = 1
endFact
endGoal
`)
	if err := s.Dispatch(context.Background(), "run_BFS"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "found=true") {
		t.Fatalf("expected found=true in output, got %q", out.String())
	}
}

func TestRunAStarRequiresHeuristic(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.Dispatch(context.Background(), "run_AStar")
	if err == nil {
		t.Fatal("expected an error")
	}
}

func TestDefRuleRejectsDuplicateRuleName(t *testing.T) {
	s, _ := newTestSession(t)
	path1 := filepath.Join(t.TempDir(), "k1.kb")
	path2 := filepath.Join(t.TempDir(), "k2.kb")
	rule := `
beginRule:r1
  equal(?B,x,1)
then
  assert(?B)
endRule
`
	if err := os.WriteFile(path1, []byte(rule), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path2, []byte(rule), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispatch(context.Background(), "def_rule "+path1); err != nil {
		t.Fatalf("unexpected error loading first file: %v", err)
	}
	err := s.Dispatch(context.Background(), "def_rule "+path2)
	if err == nil {
		t.Fatal("expected a DuplicateItem error loading a second r1")
	}
	var cerr *container.Error
	if !errors.As(err, &cerr) || cerr.Kind != container.DuplicateItem {
		t.Fatalf("expected DuplicateItem, got %v", err)
	}
}

func writeKB(t *testing.T, s *Session, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "k.kb")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if err := s.Dispatch(context.Background(), "load "+path); err != nil {
		t.Fatal(err)
	}
}
