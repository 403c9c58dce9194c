// Package trace is the rotating JSON-lines diagnostic recorder for search
// runs: node visits, rule firings, and final results, keyed by a run ID so a
// shell session's history of searches stays disambiguated on disk.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxFiles = 20
	DefaultDir      = ".expertsys/traces"
)

// Event is a single record written to the active trace file.
type Event struct {
	Timestamp time.Time   `json:"ts"`
	Type      string      `json:"type"`
	RunID     string      `json:"run_id,omitempty"`
	Data      interface{} `json:"data"`
}

// Recorder manages rotating trace files for search diagnostics.
type Recorder struct {
	mu       sync.Mutex
	file     *os.File
	encoder  *json.Encoder
	basePath string
	maxFiles int
}

// NewRecorder creates a recorder writing under basePath, ensuring the
// directory exists. maxFiles <= 0 falls back to DefaultMaxFiles.
func NewRecorder(basePath string, maxFiles int) (*Recorder, error) {
	if basePath == "" {
		basePath = DefaultDir
	}
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &Recorder{basePath: basePath, maxFiles: maxFiles}, nil
}

// Start begins a new recording run, rotating old trace files so only the
// newest maxFiles are retained. An empty runID generates a fresh one; the
// resolved run ID is returned so callers can correlate a search's final
// result with its trace file.
func (r *Recorder) Start(runID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if runID == "" {
		runID = uuid.NewString()
	}

	if r.file != nil {
		_ = r.file.Close()
		r.file = nil
	}

	if err := r.rotate(); err != nil {
		return "", fmt.Errorf("rotate traces: %w", err)
	}

	filename := fmt.Sprintf("search_%s_%d.jsonl", runID, time.Now().UnixMilli())
	path := filepath.Join(r.basePath, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	r.file = f
	r.encoder = json.NewEncoder(f)
	return runID, nil
}

// Log writes a single event to the current trace file. A no-op if no run is
// active (the caller never started tracing, or it is disabled by config).
func (r *Recorder) Log(eventType, runID string, data interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.encoder == nil {
		return
	}

	_ = r.encoder.Encode(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		RunID:     runID,
		Data:      data,
	})
}

// LogVisited records a single node expansion during search.
func (r *Recorder) LogVisited(runID string, stateHash string, depth int) {
	r.Log("node_visited", runID, map[string]any{"state": stateHash, "depth": depth})
}

// LogFired records a rule firing that produced a new successor state.
func (r *Recorder) LogFired(runID, ruleName string, depth int) {
	r.Log("rule_fired", runID, map[string]any{"rule": ruleName, "depth": depth})
}

// LogResult records a search's terminal outcome.
func (r *Recorder) LogResult(runID string, found bool, pathLen, visited int) {
	r.Log("search_result", runID, map[string]any{
		"found":      found,
		"path_len":   pathLen,
		"visited":    visited,
		"penetrance": penetrance(pathLen, visited),
	})
}

func penetrance(pathLen, visited int) float64 {
	if visited == 0 {
		return 0
	}
	return float64(pathLen) / float64(visited)
}

// rotate keeps only the newest maxFiles-1 existing trace files, making room
// for the one about to be created.
func (r *Recorder) rotate() error {
	entries, err := os.ReadDir(r.basePath)
	if err != nil {
		return err
	}

	type traceFile struct {
		Name string
		Time time.Time
	}
	var traces []traceFile

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		traces = append(traces, traceFile{e.Name(), info.ModTime()})
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Time.After(traces[j].Time)
	})

	if len(traces) >= r.maxFiles {
		keep := r.maxFiles - 1
		if keep < 0 {
			keep = 0
		}
		for i := keep; i < len(traces); i++ {
			_ = os.Remove(filepath.Join(r.basePath, traces[i].Name))
		}
	}
	return nil
}

// Close finishes the current recording run.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		r.encoder = nil
		return err
	}
	return nil
}
