package mcpshell

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"expertsys/internal/config"
	"expertsys/internal/shell"
	"expertsys/internal/trace"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Tool describes the contract for MCP tool implementations, identical in
// shape to the teacher's internal/mcp.Tool.
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Server wires the MCP runtime to a single shell session: every tool call
// mutates the same working memory, rule base, and goal (§6's shell owns
// working memory for the session's duration).
type Server struct {
	cfg       config.Config
	session   *shell.Session
	tools     map[string]Tool
	mcpServer *mcpserver.MCPServer
}

// NewServer constructs the expert-system MCP server and registers every
// shell command as a tool.
func NewServer(cfg config.Config, recorder *trace.Recorder) (*Server, error) {
	mcpSrv := mcpserver.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithLogging(),
		mcpserver.WithRecovery(),
	)

	s := &Server{
		cfg:       cfg,
		session:   shell.NewSession(cfg, recorder, os.Stdout),
		tools:     make(map[string]Tool),
		mcpServer: mcpSrv,
	}
	s.registerAllTools()
	return s, nil
}

// Start launches the stdio server.
func (s *Server) Start(ctx context.Context) error {
	stdio := mcpserver.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// StartSSE hosts the server over HTTP using SSE endpoints with graceful
// shutdown, for deployments that can't use stdio.
func (s *Server) StartSSE(ctx context.Context, port int) error {
	sseServer := mcpserver.NewSSEServer(s.mcpServer, mcpserver.WithBaseURL("http://localhost:"+strconv.Itoa(port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(port),
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// ExecuteTool executes a tool directly, used by tests.
func (s *Server) ExecuteTool(name string, args map[string]interface{}) (interface{}, error) {
	tool, exists := s.tools[name]
	if !exists {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool.Execute(context.Background(), args)
}

func (s *Server) registerAllTools() {
	s.registerTool(&LoadKnowledgeBaseTool{session: s.session})
	s.registerTool(&DefineFactsTool{session: s.session})
	s.registerTool(&DeleteFactTool{session: s.session})
	s.registerTool(&DefineRuleTool{session: s.session})
	s.registerTool(&DeleteRuleTool{session: s.session})
	s.registerTool(&ListFactsTool{session: s.session})
	s.registerTool(&ListRulesTool{session: s.session})
	s.registerTool(&DefineGoalTool{session: s.session})
	s.registerTool(&DeleteGoalFactTool{session: s.session})
	s.registerTool(&GetGoalTool{session: s.session})
	s.registerTool(&ClearFactsTool{session: s.session})
	s.registerTool(&ClearRulesTool{session: s.session})
	s.registerTool(&RunSearchTool{session: s.session})
}

func (s *Server) registerTool(tool Tool) {
	s.tools[tool.Name()] = tool

	schema, err := json.Marshal(tool.InputSchema())
	if err != nil {
		schema = json.RawMessage(`{"type":"object"}`)
	}

	mcpTool := mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), schema)
	s.mcpServer.AddTool(mcpTool, s.wrapTool(tool))
}

func (s *Server) wrapTool(tool Tool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		if args == nil {
			args = map[string]interface{}{}
		}

		result, err := tool.Execute(ctx, args)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{mcp.NewTextContent(fmt.Sprintf("tool %s failed: %v", tool.Name(), err))},
				IsError: true,
			}, nil
		}

		payload, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			payload = []byte(fmt.Sprintf(`{"success":false,"error":"tool %s returned non-serializable payload"}`, tool.Name()))
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{mcp.NewTextContent(string(payload))},
			IsError: false,
		}, nil
	}
}
