// Package mcpserver exposes the storefront builder to AI agents over MCP.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"storefront/internal/service"
)

// Server is the MCP server for the storefront builder. It exposes the
// section and store operations as tools so agents can assemble and publish
// storefront layouts.
type Server struct {
	mcp     *server.MCPServer
	emitter service.EventEmitter

	// Services (injected from the command layer)
	builder   *service.BuilderService
	stores    *service.StoreService
	templates *service.TemplateRegistry

	// Active store context (set by the set_active_store tool). Guarded by
	// mu: the transport may dispatch tool calls concurrently.
	mu            sync.Mutex
	activeStoreID string
}

// Deps holds all dependencies passed to the MCP server.
type Deps struct {
	Emitter   service.EventEmitter
	Builder   *service.BuilderService
	Stores    *service.StoreService
	Templates *service.TemplateRegistry
}

// New creates and configures a new MCP server with all tools registered.
func New(deps Deps) *Server {
	s := &Server{
		emitter:   deps.Emitter,
		builder:   deps.Builder,
		stores:    deps.Stores,
		templates: deps.Templates,
	}

	s.mcp = server.NewMCPServer(
		"storefront-builder-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.registerStoreTools()
	s.registerSectionTools()

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// ── Helpers ────────────────────────────────────────────────

// resolveStoreID returns the storeId from tool args or falls back to the
// active store.
func (s *Server) resolveStoreID(args map[string]any) (string, error) {
	if id, ok := args["storeId"].(string); ok && id != "" {
		return id, nil
	}
	s.mu.Lock()
	active := s.activeStoreID
	s.mu.Unlock()
	if active != "" {
		return active, nil
	}
	return "", fmt.Errorf("no storeId provided and no active store set (use set_active_store first)")
}

// setActiveStore records the store that later tool calls default to.
func (s *Server) setActiveStore(storeID string) {
	s.mu.Lock()
	s.activeStoreID = storeID
	s.mu.Unlock()
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }

// emitDocumentChanged notifies listeners that a store's layout changed.
func (s *Server) emitDocumentChanged(ctx context.Context, storeID string) {
	s.emitter.Emit(ctx, "mcp:document-changed", map[string]string{"storeId": storeID})
}
