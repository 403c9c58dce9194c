package mcpshell

import (
	"context"
	"fmt"

	"expertsys/internal/entity"
	"expertsys/internal/kb"
	"expertsys/internal/shell"
)

func factToMap(f entity.Fact) map[string]interface{} {
	attrs := make(map[string]interface{}, len(f.Attrs))
	for k, v := range f.Attrs {
		attrs[k] = v.String()
	}
	return map[string]interface{}{"name": f.Name, "attrs": attrs}
}

type LoadKnowledgeBaseTool struct{ session *shell.Session }

func (t *LoadKnowledgeBaseTool) Name() string { return "load-knowledge-base" }
func (t *LoadKnowledgeBaseTool) Description() string {
	return `Parse a knowledge-base text file and merge its facts, rules, and goal into
the current session's working memory.

USE THIS FIRST before running any search. The file must use the
beginFact/beginRule/beginGoal block grammar.`
}
func (t *LoadKnowledgeBaseTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{"type": "string", "description": "Path to the knowledge-base file"},
		},
		"required": []string{"path"},
	}
}
func (t *LoadKnowledgeBaseTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	path := getStringArg(args, "path")
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	kbase, err := kb.ParseFile(path)
	if err != nil {
		return nil, err
	}
	t.session.Facts.Update(kbase.Facts)
	if err := shell.MergeRules(t.session.Rules, kbase.Rules); err != nil {
		return nil, err
	}
	if kbase.Goal.Len() > 0 {
		t.session.Goal = kbase.Goal
	}
	return map[string]interface{}{
		"facts_loaded": kbase.Facts.Len(),
		"goal_facts":   kbase.Goal.Len(),
	}, nil
}

type DefineFactsTool struct{ session *shell.Session }

func (t *DefineFactsTool) Name() string        { return "define-facts" }
func (t *DefineFactsTool) Description() string { return "Add facts from a knowledge-base file, leaving rules and the goal untouched." }
func (t *DefineFactsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{"type": "string"},
		},
		"required": []string{"path"},
	}
}
func (t *DefineFactsTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	path := getStringArg(args, "path")
	kbase, err := kb.ParseFile(path)
	if err != nil {
		return nil, err
	}
	t.session.Facts.Update(kbase.Facts)
	return map[string]interface{}{"facts_loaded": kbase.Facts.Len()}, nil
}

type DeleteFactTool struct{ session *shell.Session }

func (t *DeleteFactTool) Name() string        { return "delete-fact" }
func (t *DeleteFactTool) Description() string { return "Remove a fact from working memory by name." }
func (t *DeleteFactTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"name": map[string]interface{}{"type": "string"}},
		"required":   []string{"name"},
	}
}
func (t *DeleteFactTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	name := getStringArg(args, "name")
	if err := t.session.Facts.Remove(name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": name}, nil
}

type ListFactsTool struct{ session *shell.Session }

func (t *ListFactsTool) Name() string        { return "list-facts" }
func (t *ListFactsTool) Description() string { return "List every fact currently in working memory." }
func (t *ListFactsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}
func (t *ListFactsTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	names := t.session.Facts.Names()
	facts := make([]map[string]interface{}, 0, len(names))
	for _, n := range names {
		f, _ := t.session.Facts.Get(n)
		facts = append(facts, factToMap(f))
	}
	return map[string]interface{}{"facts": facts}, nil
}

type ClearFactsTool struct{ session *shell.Session }

func (t *ClearFactsTool) Name() string        { return "clear-facts" }
func (t *ClearFactsTool) Description() string { return "Empty working memory." }
func (t *ClearFactsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}
func (t *ClearFactsTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	t.session.Facts.Clear()
	return map[string]interface{}{"cleared": true}, nil
}
