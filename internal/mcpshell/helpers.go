// Package mcpshell exposes the shell command surface (internal/shell) as
// MCP tools, grounded on the teacher's internal/mcp package: the same Tool
// interface, the same registerTool/wrapTool wiring, the same
// getStringArg/getIntArg argument helpers.
package mcpshell

import "fmt"

func getStringArg(args map[string]interface{}, key string) string {
	val, ok := args[key]
	if !ok {
		return ""
	}
	switch v := val.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func getIntArg(args map[string]interface{}, key string, fallback int) int {
	val, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
