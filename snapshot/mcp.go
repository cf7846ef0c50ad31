// CLAUDE:SUMMARY Registers the domdrive_snapshot MCP tool.
package snapshot

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrive/kit"
)

// ToolName is the MCP name of the capture operation.
const ToolName = "domdrive_snapshot"

type captureRequest struct {
	IncludeText     *bool `json:"include_text,omitempty"`
	IncludeMarkdown bool  `json:"include_markdown,omitempty"`
}

func (r *captureRequest) options() Options {
	includeText := true
	if r.IncludeText != nil {
		includeText = *r.IncludeText
	}
	return Options{IncludeText: includeText, IncludeMarkdown: r.IncludeMarkdown}
}

// endpoint is the transport-agnostic capture operation. Terminal failures
// become errors-only results, matching the wire contract.
func (s *Service) endpoint() kit.Endpoint {
	base := func(ctx context.Context, req any) (any, error) {
		snap, err := s.Capture(ctx, req.(*captureRequest).options())
		if err != nil {
			return kit.ErrorResult{Error: err.Error()}, nil
		}
		return snap, nil
	}
	return kit.Chain(kit.Logging(s.cfg.Logger, ToolName))(base)
}

// RegisterMCP registers the snapshot tool on an MCP server.
func (s *Service) RegisterMCP(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        ToolName,
		Description: "Capture the active browser view: PNG image, URL, title, viewport size, and an optional excerpt of the visible text.",
		InputSchema: kit.InputSchema(map[string]any{
			"include_text":     map[string]any{"type": "boolean", "description": "Include a normalized excerpt of the visible page text (default true)"},
			"include_markdown": map[string]any{"type": "boolean", "description": "Include the sanitized page content rendered as markdown (default false)"},
		}, nil),
	}

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r captureRequest
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, s.endpoint(), decode)
}
