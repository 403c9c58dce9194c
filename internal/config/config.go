package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// WorkspaceDirName is the directory name for project-level expertsys config.
	WorkspaceDirName = ".expertsys"
	// WorkspaceConfigFile is the config file name inside the workspace directory.
	WorkspaceConfigFile = "config.yaml"
	// MaxSearchDepth limits how many directories (the start directory and its ancestors) are checked when discovering a workspace.
	MaxSearchDepth = 10
)

// WorkspaceOptions controls workspace discovery behavior.
type WorkspaceOptions struct {
	// Disable skips workspace discovery entirely (--no-workspace flag).
	Disable bool
	// ExplicitDir uses this directory as workspace root instead of walking up (--workspace-dir flag).
	ExplicitDir string
}

// Config captures all tunable settings for the expertsys shell and MCP server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Trace  TraceConfig  `yaml:"trace"`
	Shell  ShellConfig  `yaml:"shell"`
	MCP    MCPConfig    `yaml:"mcp"`
}

// MCPConfig controls the MCP tool server's transport.
type MCPConfig struct {
	// SSEPort, when non-zero, serves MCP over SSE on this port instead of
	// stdio.
	SSEPort int `yaml:"sse_port"`
}

type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	LogFile string `yaml:"log_file"`
}

// EngineConfig tunes default search-driver behavior (§6).
type EngineConfig struct {
	// DefaultMaxDepth bounds rule firings per search when a shell command
	// omits its own max_depth argument (§6: default 1000).
	DefaultMaxDepth int `yaml:"default_max_depth"`
	// DefaultHeuristic names a heuristic: HAMMINGDISTANCE,
	// MANHATTANDISTANCE, or LINEARCONFLICT; Validate rejects any other
	// value. run_AStar/run_BestFirst do not fall back to it: both require
	// an explicit heuristic.
	DefaultHeuristic string `yaml:"default_heuristic"`
}

// TraceConfig controls the rotating diagnostic event recorder.
type TraceConfig struct {
	// Enable turns on per-search JSON-lines tracing. Each search records
	// its final result (found, path length, visited count, penetrance);
	// node visits and rule firings are not recorded.
	Enable bool `yaml:"enable"`
	// Dir is where rotating trace files are written.
	Dir string `yaml:"dir"`
	// MaxFiles bounds how many rotated trace files are retained.
	MaxFiles int `yaml:"max_files"`
}

// ShellConfig configures the interactive command shell.
type ShellConfig struct {
	// Prompt is the interactive prompt string.
	Prompt string `yaml:"prompt"`
	// HistoryFile is a path for shell command history. It is resolved
	// against the workspace directory; the shell neither reads nor writes it.
	HistoryFile string `yaml:"history_file"`
	// KnowledgeBaseDir is the default directory `load` resolves relative
	// paths against.
	KnowledgeBaseDir string `yaml:"knowledge_base_dir"`
}

// DefaultConfig provides reasonable defaults for local development.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Name:    "expertsys",
			Version: "0.1.0",
			LogFile: "expertsys.log",
		},
		Engine: EngineConfig{
			DefaultMaxDepth:  1000,
			DefaultHeuristic: "HAMMINGDISTANCE",
		},
		Trace: TraceConfig{
			Enable:   false,
			Dir:      "traces",
			MaxFiles: 20,
		},
		Shell: ShellConfig{
			Prompt:           "expertsys> ",
			HistoryFile:      "history.txt",
			KnowledgeBaseDir: ".",
		},
	}
}

// Load reads YAML config from disk and overlays defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, errors.New("config path is required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// DiscoverWorkspace walks up from startDir looking for a .expertsys/config.yaml file.
// Returns the workspace root directory (parent of .expertsys/) or empty string if not found.
func DiscoverWorkspace(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving start directory: %w", err)
	}

	for i := 0; i < MaxSearchDepth; i++ {
		candidate := filepath.Join(dir, WorkspaceDirName, WorkspaceConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", nil
}

// LoadWithWorkspace implements multi-layer config merge:
//
//	DefaultConfig() <- .expertsys/config.yaml <- explicit --config <- CLI flags
//
// Returns the merged config and the workspace directory (empty if none found).
func LoadWithWorkspace(explicitConfig string, opts WorkspaceOptions) (Config, string, error) {
	cfg := DefaultConfig()
	wsDir := ""

	// Layer 1: Workspace config (if not disabled)
	if !opts.Disable {
		var err error
		if opts.ExplicitDir != "" {
			// Verify the explicit workspace dir has a config
			candidate := filepath.Join(opts.ExplicitDir, WorkspaceDirName, WorkspaceConfigFile)
			if _, statErr := os.Stat(candidate); statErr == nil {
				wsDir = opts.ExplicitDir
			}
		} else {
			cwd, cwdErr := os.Getwd()
			if cwdErr != nil {
				return cfg, "", fmt.Errorf("getting working directory: %w", cwdErr)
			}
			wsDir, err = DiscoverWorkspace(cwd)
			if err != nil {
				return cfg, "", fmt.Errorf("discovering workspace: %w", err)
			}
		}

		if wsDir != "" {
			wsConfigPath := filepath.Join(wsDir, WorkspaceDirName, WorkspaceConfigFile)
			raw, err := os.ReadFile(wsConfigPath)
			if err != nil {
				return cfg, "", fmt.Errorf("reading workspace config %s: %w", wsConfigPath, err)
			}
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, "", fmt.Errorf("parsing workspace config %s: %w", wsConfigPath, err)
			}
			cfg = resolveWorkspacePaths(cfg, wsDir)
		}
	}

	// Layer 2: Explicit config file (--config flag)
	if explicitConfig != "" {
		raw, err := os.ReadFile(explicitConfig)
		if err != nil {
			return cfg, wsDir, fmt.Errorf("reading explicit config %s: %w", explicitConfig, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, wsDir, fmt.Errorf("parsing explicit config %s: %w", explicitConfig, err)
		}
	}

	return cfg, wsDir, cfg.Validate()
}

// InitWorkspace creates a .expertsys/ directory with template files at root.
func InitWorkspace(root string) error {
	wsDir := filepath.Join(root, WorkspaceDirName)

	// Check if already exists
	if _, err := os.Stat(wsDir); err == nil {
		return fmt.Errorf("workspace directory already exists: %s", wsDir)
	}

	// Create directory structure
	dirs := []string{
		wsDir,
		filepath.Join(wsDir, "kb"),
		filepath.Join(wsDir, "traces"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write template config
	templateConfig := `# expertsys project-level configuration
# Values here override defaults but are overridden by --config and CLI flags.

# engine:
#   default_max_depth: 1000
#   default_heuristic: HAMMINGDISTANCE

# trace:
#   enable: true
#   dir: .expertsys/traces

# shell:
#   knowledge_base_dir: .expertsys/kb
`
	configPath := filepath.Join(wsDir, WorkspaceConfigFile)
	if err := os.WriteFile(configPath, []byte(templateConfig), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	// Write .gitignore for trace output
	gitignoreContent := "# Runtime data (traces, history) - do not version control\ntraces/\nhistory.txt\n"
	gitignorePath := filepath.Join(wsDir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte(gitignoreContent), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}

// resolveWorkspacePaths resolves relative paths in the config against the workspace directory.
func resolveWorkspacePaths(cfg Config, wsDir string) Config {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wsDir, p)
	}

	cfg.Server.LogFile = resolve(cfg.Server.LogFile)
	cfg.Trace.Dir = resolve(cfg.Trace.Dir)
	cfg.Shell.HistoryFile = resolve(cfg.Shell.HistoryFile)
	return cfg
}

// Validate ensures required fields exist so the shell can start deterministically.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return errors.New("server.name is required")
	}
	if c.Engine.DefaultMaxDepth <= 0 {
		return errors.New("engine.default_max_depth must be positive")
	}
	switch c.Engine.DefaultHeuristic {
	case "HAMMINGDISTANCE", "MANHATTANDISTANCE", "LINEARCONFLICT":
	default:
		return fmt.Errorf("engine.default_heuristic %q is not a recognized heuristic", c.Engine.DefaultHeuristic)
	}
	return nil
}
