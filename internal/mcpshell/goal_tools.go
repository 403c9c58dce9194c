package mcpshell

import (
	"context"
	"fmt"

	"expertsys/internal/kb"
	"expertsys/internal/shell"
)

type DefineGoalTool struct{ session *shell.Session }

func (t *DefineGoalTool) Name() string        { return "define-goal" }
func (t *DefineGoalTool) Description() string { return "Set the goal from a knowledge-base file's goal block." }
func (t *DefineGoalTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string"}},
		"required":   []string{"path"},
	}
}
func (t *DefineGoalTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	path := getStringArg(args, "path")
	kbase, err := kb.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if kbase.Goal.Len() == 0 {
		return nil, fmt.Errorf("no goal block in file")
	}
	t.session.Goal = kbase.Goal
	return map[string]interface{}{"goal_facts": kbase.Goal.Len()}, nil
}

type DeleteGoalFactTool struct{ session *shell.Session }

func (t *DeleteGoalFactTool) Name() string        { return "delete-goal-fact" }
func (t *DeleteGoalFactTool) Description() string { return "Remove a fact from the goal by name." }
func (t *DeleteGoalFactTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"name": map[string]interface{}{"type": "string"}},
		"required":   []string{"name"},
	}
}
func (t *DeleteGoalFactTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	name := getStringArg(args, "name")
	if err := t.session.Goal.Remove(name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": name}, nil
}

type GetGoalTool struct{ session *shell.Session }

func (t *GetGoalTool) Name() string        { return "get-goal" }
func (t *GetGoalTool) Description() string { return "List every fact named in the current goal." }
func (t *GetGoalTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}
func (t *GetGoalTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	names := t.session.Goal.Names()
	facts := make([]map[string]interface{}, 0, len(names))
	for _, n := range names {
		f, _ := t.session.Goal.Get(n)
		facts = append(facts, factToMap(f))
	}
	return map[string]interface{}{"goal": facts}, nil
}
