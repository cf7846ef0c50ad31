package snapshot

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrive/surface"
	"github.com/hazyhaar/domdrive/surface/surfacetest"
)

var testImpl = &mcp.Implementation{Name: "domdrive-test", Version: "0.1.0"}

func mcpSession(t *testing.T, f *surfacetest.Fake) *mcp.ClientSession {
	t.Helper()
	reg := surface.NewRegistry()
	if f != nil {
		reg.SetActive(f)
	}
	s := testService(t, reg, Config{})

	srv := mcp.NewServer(testImpl, nil)
	s.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()

	go func() {
		_ = srv.Run(ctx, serverT)
	}()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if err := result.GetError(); err != nil {
		t.Fatalf("CallTool(%s) tool error: %v", name, err)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	return tc.Text
}

func TestMCP_Snapshot_DefaultsIncludeText(t *testing.T) {
	f := loadedFake()
	session := mcpSession(t, f)

	text := callTool(t, session, ToolName, map[string]any{})

	var snap Snapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.URL != "https://example.com/page" || snap.Title != "Example Page" {
		t.Fatalf("snapshot = %+v", snap)
	}
	if snap.TextSnippet == "" {
		t.Fatal("TextSnippet empty, include_text should default to true")
	}
	if len(snap.ImagePNG) == 0 {
		t.Fatal("ImagePNG empty")
	}
}

func TestMCP_Snapshot_TextDisabled(t *testing.T) {
	f := loadedFake()
	session := mcpSession(t, f)

	text := callTool(t, session, ToolName, map[string]any{"include_text": false})

	var snap Snapshot
	if err := json.Unmarshal([]byte(text), &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	if snap.TextSnippet != "" {
		t.Fatalf("TextSnippet = %q, want empty", snap.TextSnippet)
	}
}

func TestMCP_Snapshot_NoSurface(t *testing.T) {
	session := mcpSession(t, nil)

	text := callTool(t, session, ToolName, map[string]any{})

	var res struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(text), &res); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if res.Error != "No active browser view is available." {
		t.Fatalf("error = %q", res.Error)
	}
}
