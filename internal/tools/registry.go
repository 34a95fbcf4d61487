// Package tools defines the MCP tool surface: one tool per backend
// operation plus a handful of read-only lookups. The same registry backs
// the stdio MCP server and the optional REST gateway.
package tools

import (
	"context"
	"encoding/json"

	mcpTypes "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/mifos-community/mifosx-mcp/internal/engine"
)

// Executor runs write operations. Implemented by engine.Engine.
type Executor interface {
	Execute(ctx context.Context, op engine.Operation, args engine.Args) (json.RawMessage, error)
}

// invoker is the transport-independent core of one tool.
type invoker func(ctx context.Context, args map[string]interface{}) (json.RawMessage, error)

// Tool pairs an MCP tool spec with its implementation.
type Tool struct {
	Spec mcpTypes.Tool
	run  invoker
}

// Registry holds every tool in registration order.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger *logrus.Logger
}

// NewRegistry builds the full tool set.
func NewRegistry(exec Executor, reader Reader, logger *logrus.Logger) *Registry {
	r := &Registry{
		tools:  make(map[string]Tool),
		logger: logger,
	}
	r.registerOperations(exec)
	r.registerLookups(reader)
	return r
}

func (r *Registry) add(spec mcpTypes.Tool, run invoker) {
	r.tools[spec.Name] = Tool{Spec: spec, run: run}
	r.order = append(r.order, spec.Name)
}

// Names returns every tool name in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Specs returns every tool spec in registration order.
func (r *Registry) Specs() []mcpTypes.Tool {
	specs := make([]mcpTypes.Tool, 0, len(r.order))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec)
	}
	return specs
}

// Invoke runs a tool by name. Used by the REST gateway; the MCP transport
// goes through Attach instead.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (json.RawMessage, error) {
	tool, ok := r.tools[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return tool.run(ctx, args)
}

// Attach registers every tool on an MCP server.
func (r *Registry) Attach(s *server.MCPServer) {
	for _, name := range r.order {
		tool := r.tools[name]
		s.AddTool(tool.Spec, r.handler(tool))
	}
	r.logger.Infof("Registered %d MCP tools", len(r.order))
}

func (r *Registry) handler(tool Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpTypes.CallToolRequest) (*mcpTypes.CallToolResult, error) {
		raw, err := tool.run(ctx, req.GetArguments())
		if err != nil {
			r.logger.WithError(err).WithField("tool", tool.Spec.Name).Warn("Tool call failed")
			return mcpTypes.NewToolResultError(err.Error()), nil
		}
		return mcpTypes.NewToolResultText(string(raw)), nil
	}
}

// UnknownToolError is returned when a caller names a tool that doesn't
// exist.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool " + e.Name
}
