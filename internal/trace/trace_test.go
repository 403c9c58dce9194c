package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRecorderRotation(t *testing.T) {
	tempDir := t.TempDir()

	r, err := NewRecorder(tempDir, 3)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3+2; i++ {
		if _, err := r.Start(""); err != nil {
			t.Fatal(err)
		}
		r.Log("node_visited", "run", map[string]string{"state": "A"})
		time.Sleep(10 * time.Millisecond)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 files, got %d", len(entries))
	}
}

func TestRecorderStartGeneratesRunID(t *testing.T) {
	tempDir := t.TempDir()
	r, err := NewRecorder(tempDir, 5)
	if err != nil {
		t.Fatal(err)
	}
	runID, err := r.Start("")
	if err != nil {
		t.Fatal(err)
	}
	if runID == "" {
		t.Fatal("expected a generated run ID")
	}
}

func TestRecorderLogResultComputesPenetrance(t *testing.T) {
	tempDir := t.TempDir()
	r, err := NewRecorder(tempDir, 5)
	if err != nil {
		t.Fatal(err)
	}
	runID, err := r.Start("fixed-run")
	if err != nil {
		t.Fatal(err)
	}
	r.LogResult(runID, true, 2, 4)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one trace file, got %d", len(entries))
	}

	raw, err := os.ReadFile(filepath.Join(tempDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	var ev struct {
		Type string `json:"type"`
		Data struct {
			Penetrance float64 `json:"penetrance"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Type != "search_result" || ev.Data.Penetrance != 0.5 {
		t.Fatalf("expected search_result with penetrance 0.5, got %+v", ev)
	}
}
