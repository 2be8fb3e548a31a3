package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/slug"
)

func (s *Server) registerStoreTools() {
	// ── set_active_store ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_store",
		mcp.WithDescription("Set the active store so later tool calls can omit storeId"),
		mcp.WithString("storeId", mcp.Description("Store ID"), mcp.Required()),
	), s.handleSetActiveStore)

	// ── create_store ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_store",
		mcp.WithDescription("Create a new store with a starter storefront document. Consumes one store credit from the tenant."),
		mcp.WithString("tenantId", mcp.Description("Owning tenant ID"), mcp.Required()),
		mcp.WithString("name", mcp.Description("Display name for the store"), mcp.Required()),
		mcp.WithString("slug", mcp.Description("URL slug (optional, generated from the name when omitted)")),
	), s.handleCreateStore)

	// ── check_slug ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("check_slug",
		mcp.WithDescription("Check whether a slug is valid and still available"),
		mcp.WithString("slug", mcp.Description("Slug to check"), mcp.Required()),
	), s.handleCheckSlug)

	// ── get_store ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_store",
		mcp.WithDescription("Get a store's metadata (name, slug, published state)"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleGetStore)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleSetActiveStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, _ := req.GetArguments()["storeId"].(string)
	if storeID == "" {
		return nil, fmt.Errorf("storeId is required")
	}
	store, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("set active store: %w", err)
	}
	s.setActiveStore(store.ID)
	return textResult(fmt.Sprintf("Active store set to %s (%s)", store.Name, store.ID)), nil
}

func (s *Server) handleCreateStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	tenantID, _ := args["tenantId"].(string)
	name, _ := args["name"].(string)
	proposedSlug, _ := args["slug"].(string)
	if tenantID == "" || name == "" {
		return nil, fmt.Errorf("tenantId and name are required")
	}

	store, err := s.stores.CreateStore(ctx, tenantID, name, proposedSlug)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.setActiveStore(store.ID)
	return jsonResult(store)
}

func (s *Server) handleCheckSlug(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	proposed, _ := req.GetArguments()["slug"].(string)
	if err := s.stores.CheckSlug(ctx, proposed); err != nil {
		if errors.Is(err, slug.ErrTooShort) || errors.Is(err, slug.ErrInvalidFormat) || errors.Is(err, slug.ErrTaken) {
			return textResult(fmt.Sprintf("Slug %q is not usable: %v", proposed, err)), nil
		}
		return nil, fmt.Errorf("check slug: %w", err)
	}
	return textResult(fmt.Sprintf("Slug %q is available", proposed)), nil
}

func (s *Server) handleGetStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	store, err := s.stores.GetStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return jsonResult(store)
}
