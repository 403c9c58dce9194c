package mcpshell

import (
	"context"
	"fmt"
	"strings"

	"expertsys/internal/search"
	"expertsys/internal/shell"
)

type RunSearchTool struct{ session *shell.Session }

func (t *RunSearchTool) Name() string { return "run-search" }
func (t *RunSearchTool) Description() string {
	return `Run a forward-chaining search from the current working memory toward the
current goal.

engine: one of BFS, DFS, AStar, BestFirst.
heuristic: required for AStar/BestFirst — HAMMINGDISTANCE, MANHATTANDISTANCE,
  or LINEARCONFLICT. The latter two also require attrs.
attrs: comma-separated "value_attr,x_attr,y_attr" triple, required by
  MANHATTANDISTANCE/LINEARCONFLICT.
max_depth: defaults to the session's configured max depth (1000 unless
  overridden).`
}
func (t *RunSearchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"engine":    map[string]interface{}{"type": "string", "enum": []string{"BFS", "DFS", "AStar", "BestFirst"}},
			"heuristic": map[string]interface{}{"type": "string"},
			"attrs":     map[string]interface{}{"type": "string"},
			"max_depth": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"engine"},
	}
}
func (t *RunSearchTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	engine := getStringArg(args, "engine")
	heuristicName := getStringArg(args, "heuristic")
	attrsArg := getStringArg(args, "attrs")
	maxDepth := getIntArg(args, "max_depth", t.session.Cfg.Engine.DefaultMaxDepth)

	var attrs []string
	if attrsArg != "" {
		attrs = strings.Split(attrsArg, ",")
	}

	var (
		h   search.Heuristic
		err error
	)
	if engine == "AStar" || engine == "BestFirst" {
		if heuristicName == "" {
			return nil, fmt.Errorf("%s requires a heuristic", engine)
		}
		h, err = buildHeuristic(heuristicName, attrs)
		if err != nil {
			return nil, err
		}
	}

	runID := ""
	if t.session.Recorder != nil {
		runID, _ = t.session.Recorder.Start("")
	}

	var result search.Result
	switch engine {
	case "BFS":
		result, err = search.BFS(t.session.Facts, t.session.Rules, t.session.Goal, maxDepth)
	case "DFS":
		result, err = search.DFS(t.session.Facts, t.session.Rules, t.session.Goal, maxDepth)
	case "AStar":
		result, err = search.AStar(t.session.Facts, t.session.Rules, t.session.Goal, h, maxDepth)
	case "BestFirst":
		result, err = search.BestFirst(t.session.Facts, t.session.Rules, t.session.Goal, h, maxDepth)
	default:
		return nil, fmt.Errorf("unknown engine %q", engine)
	}
	if err != nil {
		return nil, err
	}
	if t.session.Recorder != nil {
		t.session.Recorder.LogResult(runID, result.Found, len(result.Path), result.Visited)
	}

	path := make([]string, len(result.Path))
	for i, r := range result.Path {
		path[i] = r.Name
	}
	return map[string]interface{}{
		"found":      result.Found,
		"visited":    result.Visited,
		"path":       path,
		"penetrance": result.Penetrance(),
	}, nil
}

// buildHeuristic parses a heuristic token and its attribute arguments. It
// mirrors internal/shell's buildHeuristic but returns plain errors instead of
// shell.CommandError.
func buildHeuristic(name string, attrs []string) (search.Heuristic, error) {
	switch strings.ToUpper(name) {
	case "HAMMINGDISTANCE":
		return search.Hamming(), nil
	case "MANHATTANDISTANCE":
		if len(attrs) != 3 {
			return nil, fmt.Errorf("MANHATTANDISTANCE requires value_attr,x_attr,y_attr")
		}
		return search.Manhattan(attrs[0], attrs[1], attrs[2]), nil
	case "LINEARCONFLICT":
		if len(attrs) != 3 {
			return nil, fmt.Errorf("LINEARCONFLICT requires value_attr,x_attr,y_attr")
		}
		return search.LinearConflict(attrs[0], attrs[1], attrs[2]), nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}
