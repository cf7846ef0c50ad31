// CLAUDE:SUMMARY Registers the domdrive_act MCP tool.
package actions

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrive/kit"
)

// ToolName is the MCP name of the execute operation.
const ToolName = "domdrive_act"

// DefaultMaxActions caps a batch when the caller does not say otherwise.
const DefaultMaxActions = 10

type actRequest struct {
	ActionsJSON         string `json:"actions_json"`
	RequireConfirmation *bool  `json:"require_confirmation,omitempty"`
	MaxActions          *int   `json:"max_actions,omitempty"`
}

func (r *actRequest) options() Options {
	opts := Options{RequireConfirmation: true, MaxActions: DefaultMaxActions}
	if r.RequireConfirmation != nil {
		opts.RequireConfirmation = *r.RequireConfirmation
	}
	if r.MaxActions != nil {
		opts.MaxActions = *r.MaxActions
	}
	return opts
}

// endpoint is the transport-agnostic execute operation. Terminal failures
// become errors-only results, matching the wire contract.
func (e *Executor) endpoint() kit.Endpoint {
	base := func(ctx context.Context, req any) (any, error) {
		r := req.(*actRequest)
		res, err := e.Execute(ctx, r.ActionsJSON, r.options())
		if err != nil {
			return kit.ErrorResult{Error: err.Error()}, nil
		}
		return res, nil
	}
	return kit.Chain(kit.Logging(e.cfg.Logger, ToolName))(base)
}

// RegisterMCP registers the execute tool on an MCP server.
func (e *Executor) RegisterMCP(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolName,
		Description: "Execute a JSON batch of browser actions (navigate, click_at, scroll, type, wait) against the active view and report per-action outcomes.",
		InputSchema: kit.InputSchema(map[string]any{
			"actions_json":         map[string]any{"type": "string", "description": "JSON action batch: {\"actions\":[{\"type\":\"navigate\",\"url\":...}|{\"type\":\"click_at\",\"x\":0-1000,\"y\":0-1000}|{\"type\":\"scroll\",\"deltaY\":n}|{\"type\":\"type\",\"text\":...}|{\"type\":\"wait\",\"ms\":n}]}"},
			"require_confirmation": map[string]any{"type": "boolean", "description": "Pause the whole batch when the page content matches risk keywords (default true)"},
			"max_actions":          map[string]any{"type": "integer", "description": "Cap on processed actions (default 10, minimum effective 1)"},
		}, []string{"actions_json"}),
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r actRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, e.endpoint(), decode)
}
