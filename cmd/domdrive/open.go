// CLAUDE:SUMMARY Registers the domdrive_open host tool — opens a tab and activates it in the registry.
package main

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrive/browser"
	"github.com/hazyhaar/domdrive/kit"
)

type openRequest struct {
	URL string `json:"url"`
}

type openResult struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// registerOpenTool exposes tab creation as an MCP tool. Opening a tab
// makes it the active surface, so a snapshot or action call right after
// targets the new page.
func registerOpenTool(srv *mcp.Server, mgr *browser.Manager, logger *slog.Logger) {
	tool := &mcp.Tool{
		Name:        "domdrive_open",
		Description: "Open a new browser tab at the given URL and make it the active view.",
		InputSchema: kit.InputSchema(map[string]any{
			"url": map[string]any{"type": "string", "description": "URL to open"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*openRequest)
		tab, err := mgr.OpenTab(ctx, r.URL)
		if err != nil {
			return kit.ErrorResult{Error: err.Error()}, nil
		}
		info, err := tab.Info(ctx)
		if err != nil {
			return openResult{URL: r.URL}, nil
		}
		return openResult{URL: info.URL, Title: info.Title}, nil
	}
	endpoint = kit.Chain(kit.Logging(logger, "domdrive_open"))(endpoint)

	decode := func(req *mcp.CallToolRequest) (any, error) {
		var r openRequest
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &r, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
