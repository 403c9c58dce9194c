package mcpshell

import (
	"context"

	"expertsys/internal/kb"
	"expertsys/internal/shell"
)

type DefineRuleTool struct{ session *shell.Session }

func (t *DefineRuleTool) Name() string        { return "define-rule" }
func (t *DefineRuleTool) Description() string { return "Add rules from a knowledge-base file to the rule base." }
func (t *DefineRuleTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string"}},
		"required":   []string{"path"},
	}
}
func (t *DefineRuleTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	path := getStringArg(args, "path")
	kbase, err := kb.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := shell.MergeRules(t.session.Rules, kbase.Rules); err != nil {
		return nil, err
	}
	return map[string]interface{}{"rules_added": true}, nil
}

type DeleteRuleTool struct{ session *shell.Session }

func (t *DeleteRuleTool) Name() string        { return "delete-rule" }
func (t *DeleteRuleTool) Description() string { return "Remove every rule instance with the given source name." }
func (t *DeleteRuleTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{"name": map[string]interface{}{"type": "string"}},
		"required":   []string{"name"},
	}
}
func (t *DeleteRuleTool) Execute(_ context.Context, args map[string]interface{}) (interface{}, error) {
	name := getStringArg(args, "name")
	if err := t.session.Rules.RemoveByName(name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"removed": name}, nil
}

type ListRulesTool struct{ session *shell.Session }

func (t *ListRulesTool) Name() string        { return "list-rules" }
func (t *ListRulesTool) Description() string { return "List every bound rule currently in the rule base." }
func (t *ListRulesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}
func (t *ListRulesTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	rules := t.session.Rules.BoundRules()
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return map[string]interface{}{"rules": names}, nil
}

type ClearRulesTool struct{ session *shell.Session }

func (t *ClearRulesTool) Name() string        { return "clear-rules" }
func (t *ClearRulesTool) Description() string { return "Empty the rule base." }
func (t *ClearRulesTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}
func (t *ClearRulesTool) Execute(_ context.Context, _ map[string]interface{}) (interface{}, error) {
	t.session.Rules.Clear()
	return map[string]interface{}{"cleared": true}, nil
}
